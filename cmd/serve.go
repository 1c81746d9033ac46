package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/api"
	"github.com/example/qreview/internal/config"
	"github.com/example/qreview/internal/notify"
	"github.com/example/qreview/internal/scheduler"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the JSON API used by the web frontend. When a Telegram bot
token and chat ID are configured, an hourly due-review reminder runs
alongside the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if servePort != "" {
			cfg.ServerPort = servePort
		}

		handler := api.NewHandler(cfg.DefaultSessionLimit)
		server := &http.Server{
			Addr:    ":" + cfg.ServerPort,
			Handler: api.NewRouter(handler),
		}

		// Optional reminder scheduler
		var sched *scheduler.Scheduler
		if cfg.RemindersEnabled() {
			notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
			if err != nil {
				log.Printf("Reminders disabled: %v", err)
			} else {
				sched = scheduler.New(notifier, cfg.NotificationStartHour, cfg.NotificationEndHour)
				sched.Start()
				log.Println("Due-review reminders enabled")
			}
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		errChan := make(chan error, 1)
		go func() {
			log.Printf("Listening on :%s", cfg.ServerPort)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()

		select {
		case err := <-errChan:
			if sched != nil {
				sched.Stop()
			}
			return err
		case sig := <-sigChan:
			log.Printf("Received signal: %v, shutting down", sig)
		}

		if sched != nil {
			sched.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Println("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (default from SERVER_PORT or 8080)")
}
