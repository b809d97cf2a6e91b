package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookwell/bookwell/config"
	"github.com/bookwell/bookwell/database"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/server"
	"github.com/bookwell/bookwell/store"
	"github.com/bookwell/bookwell/version"
	"github.com/bookwell/bookwell/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	greetingBanner = `
██████   ██████   ██████  ██   ██ ██     ██ ███████ ██      ██
██   ██ ██    ██ ██    ██ ██  ██  ██     ██ ██      ██      ██
██████  ██    ██ ██    ██ █████   ██  █  ██ █████   ██      ██
██   ██ ██    ██ ██    ██ ██  ██  ██ ███ ██ ██      ██      ██
██████   ██████   ██████  ██   ██  ███ ███  ███████ ███████ ███████
`
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "bookwell",
		Short: "BookWell is a self-hosted book hosting and reading service",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			db, err := database.NewDB()
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer db.Close()
			if err := database.Migrate(ctx, db); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(db)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			uploadPool := worker.NewUploadPool(s, config.Opts.WorkerPoolSize)

			httpServer, err := server.StartServer(ctx, s, uploadPool)
			if err != nil {
				log.Error("Error starting server", zap.Error(err))
				return
			}

			fmt.Println(greetingBanner)
			fmt.Printf("Version %s has been started on %s:%d\n",
				version.GetCurrentVersion(), config.Opts.Host, config.Opts.Port)

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			<-c

			log.Info("Shutting down server")
			if err := httpServer.Shutdown(ctx); err != nil {
				log.Error("Error shutting down server", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")

	cobra.OnInitialize(func() {
		var opts *config.Options
		var err error
		if configFile != "" {
			opts, err = config.ParseFile(configFile)
		} else {
			opts, err = config.GetConfig()
		}
		if err != nil {
			log.Fallback("error", "Failed to load config: "+err.Error())
			os.Exit(1)
		}
		config.Opts = opts
		log.Logger = log.NewLogger()
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if log.Logger != nil {
		defer log.Logger.Sync()
	}
}
