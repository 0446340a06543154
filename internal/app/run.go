package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully within the configured timeout.
func Run(ctx context.Context, k *Kernel) error {
	e, err := NewRouter(k)
	if err != nil {
		return err
	}
	cfg := k.Config().Server
	log := k.Logger()

	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.Addr(), "base_url", cfg.BaseURL)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("http server error", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("context cancelled, shutting down")
	case sig := <-quit:
		log.Info("received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	log.Info("shutting down http server")
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("http server shutdown error", "err", err)
		return err
	}
	return <-errCh
}
