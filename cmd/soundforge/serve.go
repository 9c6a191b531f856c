package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve freshly rendered sounds over HTTP for previewing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.ListenAddr = listen
			}
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (env SOUNDFORGE_LISTEN_ADDR)")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	rn, err := a.newRunner()
	if err != nil {
		return err
	}
	s := server.New(rn, a.logger)

	srv := &http.Server{
		Addr:         a.cfg.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("preview server listening",
			zap.String("addr", a.cfg.ListenAddr),
			zap.Int("assets", len(rn.Catalog().Assets)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
