package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/api"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/config"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/policy"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/service"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/store"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/token"
)

var serveCfgFile string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the auth server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// initialize: load config, credential store, policy table
		cfg, err := config.Load(serveCfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		log.Info().Msg("Initializing credential store...")
		credStore, err := store.Build(cfg.Store)
		if err != nil {
			return fmt.Errorf("building credential store: %w", err)
		}

		log.Info().Msg("Initializing policy table...")
		policyTable, err := policy.New(cfg.Policy)
		if err != nil {
			return fmt.Errorf("building policy table: %w", err)
		}

		secret := cfg.Auth.SecretBytes()
		issuer := token.NewIssuer(secret, cfg.Auth.TokenTTL, nil)
		verifier := token.NewVerifier(secret, nil)
		authService := service.NewAuthService(credStore, issuer, verifier)

		// setup server
		srv := api.NewServer(authService, credStore, policyTable)

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveCfgFile, "config", "c", "pizzauth.yaml", "path to the server config file")
	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
}
