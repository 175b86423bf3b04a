package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sonderworks/beacon/config"
	"github.com/sonderworks/beacon/log"
	"github.com/sonderworks/beacon/server"
)

var rootCmd = &cobra.Command{
	Use:               "beacon",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Beacon serves localized marketing landing pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Parse()
		if err != nil {
			return err
		}

		defer func() {
			_ = log.L().Sync()
		}()

		quit := make(chan os.Signal, 1)
		s, err := server.NewServer(c)
		if err != nil {
			return err
		}

		log := log.S()

		go func() {
			log.Info("starting server")
			err := s.Start()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("failed to start server: %s", err)
			}
			quit <- os.Interrupt
		}()

		signal.Notify(quit, os.Interrupt)
		<-quit

		log.Info("stopping server")
		_ = s.Stop()
		return nil
	},
}
