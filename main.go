package main

import "github.com/pmarkesinis/SEM-Pizzeria-sub001/cmd"

func main() {
	cmd.Execute()
}
