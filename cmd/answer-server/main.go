// Package main runs the placeholder GptAnswerService on its own
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	connectadapter "question-service/internal/adapter/connect"
	"question-service/internal/infra/config"
	"question-service/internal/infra/logger"
	"question-service/internal/infra/otel"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFiles []string

	cmd := &cobra.Command{
		Use:   "answer-server",
		Short: "Serve the placeholder GptAnswerService",
		Long: `answer-server serves /gpt_answer.GptAnswerService/GetAnswer over gRPC, gRPC-Web
and Connect on answer_server.address, plus /connect/health.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFiles...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			shutdownOTel, err := otel.InitProvider(ctx, otel.Config{
				ServiceName:    "gpt-answer",
				ServiceVersion: version,
				OTLPEndpoint:   cfg.ExporterEndpoint,
				SampleRatio:    1.0,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize telemetry: %w", err)
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = shutdownOTel(flushCtx)
			}()

			log := logger.New(logger.Options{
				Level:       cfg.Log.Level,
				ServiceName: "gpt-answer",
				EnableOTel:  cfg.ExporterEndpoint != "",
			})

			srv, err := connectadapter.NewAnswerHTTPServer(cfg.AnswerServer.Address, log)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("starting answer server", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err, ok := <-errCh:
				if ok {
					return fmt.Errorf("answer server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down answer server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.PersistentFlags().StringSliceVar(&configFiles, "config", nil,
		"TOML config file, repeatable; later files override earlier ones")
	return cmd
}
