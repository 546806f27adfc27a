package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	httptransport "scrapedash/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// ServeAction runs the JSON API until ctx is cancelled.
func ServeAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(cmd.String("env"), os.Stdout)
	if err != nil {
		return err
	}
	log := appCtx.Logger

	addr := appCtx.Config.HTTPAddr
	if a := cmd.String("addr"); a != "" {
		addr = a
	}

	h := httptransport.NewHandler(appCtx.Jobs)
	srv := &http.Server{
		Addr:              addr,
		Handler:           httptransport.Routes(h, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server started", "addr", addr, "actor_id", appCtx.Client.ActorID())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("http server stopped")
	return nil
}
