package cmd

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"winemap/internal/httpapi"
	"winemap/pkg/graceful"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API for the form, table and map views",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if addr != "" {
			cfg.Addr = addr
		}
		ctx, cancel := graceful.Context(cmd.Context(), logger)
		defer cancel()

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: httpapi.NewRouter(a.Store, a.Registry, logger),
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("storage", cfg.Storage))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (WINEMAP_ADDR)")
}
