package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/cliconfig"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/pkg/client"
)

// BeQuietError signals that the error was already reported to the user and
// should not be logged again on exit.
type BeQuietError struct{}

func (BeQuietError) Error() string {
	return "exiting"
}

var (
	bold       = color.New(color.Bold).SprintFunc()
	redCross   = color.New(color.FgRed).Sprint("✗")
	greenCheck = color.New(color.FgGreen).Sprint("✓")
)

func logSuccess(format string, args ...any) {
	fmt.Printf("%s %s\n", greenCheck, fmt.Sprintf(format, args...))
}

func logError(err error, correlationID, short string) error {
	if correlationID != "" {
		fmt.Printf("%s %s (correlation ID: %s)\n", redCross, short, correlationID)
	} else {
		fmt.Printf("%s %s\n", redCross, short)
	}
	if err != nil {
		fmt.Printf("  error: %v\n", err)
	}
	return BeQuietError{}
}

func getClient() (*client.Client, error) {
	// we need the user to provide some server address first
	server := viper.GetString(ServerAddrKey)
	if server == "" {
		return nil, fmt.Errorf("server address not configured, provide via --server or env")
	}

	cfg, err := cliconfig.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		// no saved credentials yet, proceed unauthenticated
		return client.New(server), nil
	}

	var authToken string

	credential, err := cfg.GetCredential(server)
	if err != nil {
		if !errors.Is(err, cliconfig.ErrCredentialNotFound) {
			return nil, err
		}
	} else {
		authToken = credential.Token
	}

	return client.New(server, client.WithAuthToken(authToken)), nil
}
