package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	connectadapter "question-service/internal/adapter/connect"
	"question-service/internal/adapter/rest"
	"question-service/internal/di"
	"question-service/internal/infra/config"
	"question-service/internal/infra/logger"
	"question-service/internal/infra/otel"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var withAnswerServer bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the question HTTP server until SIGINT or SIGTERM.

With --with-answer-server the placeholder GptAnswerService is started in the same
process on answer_server.address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			shutdownOTel, err := otel.InitProvider(ctx, otel.Config{
				ServiceName:    cfg.ServiceName,
				ServiceVersion: version,
				OTLPEndpoint:   cfg.ExporterEndpoint,
				SampleRatio:    1.0,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize telemetry: %w", err)
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = shutdownOTel(flushCtx)
			}()

			log := logger.New(logger.Options{
				Level:       cfg.Log.Level,
				ServiceName: cfg.ServiceName,
				EnableOTel:  cfg.ExporterEndpoint != "",
			})
			log.Info("configuration loaded", "config", cfg.Redacted())

			httpLn, err := net.Listen("tcp", cfg.Server.Address())
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Server.Address(), err)
			}

			var answerLn net.Listener
			if withAnswerServer {
				answerLn, err = net.Listen("tcp", cfg.AnswerServer.Address)
				if err != nil {
					_ = httpLn.Close()
					return fmt.Errorf("listen %s: %w", cfg.AnswerServer.Address, err)
				}
			}

			return runServe(ctx, cfg, log, httpLn, answerLn)
		},
	}

	cmd.Flags().BoolVar(&withAnswerServer, "with-answer-server", false,
		"also serve the placeholder answer service on answer_server.address")
	return cmd
}

// runServe serves HTTP on httpLn, and the answer stub on answerLn when non-nil, until
// ctx is canceled or a server fails. Both servers are shut down gracefully.
func runServe(ctx context.Context, cfg *config.Config, log *slog.Logger, httpLn, answerLn net.Listener) error {
	components, err := di.NewApplicationComponents(ctx, cfg, log)
	if err != nil {
		_ = httpLn.Close()
		if answerLn != nil {
			_ = answerLn.Close()
		}
		return err
	}
	defer func() {
		if err := components.Close(); err != nil {
			log.Error("failed to close components", "error", err)
		}
	}()

	e := rest.NewEcho(cfg.ServiceName, components.Handler, log)
	servers := []*http.Server{{
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	listeners := []net.Listener{httpLn}

	if answerLn != nil {
		answerServer, err := connectadapter.NewAnswerHTTPServer(answerLn.Addr().String(), log)
		if err != nil {
			_ = httpLn.Close()
			_ = answerLn.Close()
			return err
		}
		servers = append(servers, answerServer)
		listeners = append(listeners, answerLn)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, srv := range servers {
		ln := listeners[i]
		g.Go(func() error {
			log.Info("starting server", "addr", ln.Addr().String())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", ln.Addr(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("servers stopped")
	return nil
}
