package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"
)

const shutdownTimeout = 10 * time.Second

// RegisterServers starts the public and diag listeners with the fx
// lifecycle and shuts both down gracefully on stop.
func RegisterServers(lc fx.Lifecycle, shutdowner fx.Shutdowner, a *App) {
	servers := []*http.Server{
		{Addr: a.config.Addr, Handler: a.Router(), ReadHeaderTimeout: 10 * time.Second},
		{Addr: a.config.DiagAddr, Handler: a.DiagRouter(), ReadHeaderTimeout: 10 * time.Second},
	}

	for _, srv := range servers {
		srv := srv
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				ln, err := net.Listen("tcp", srv.Addr)
				if err != nil {
					return err
				}
				a.sugarLogger.Infow("listening", "addr", srv.Addr)

				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.sugarLogger.Errorw("server stopped", "addr", srv.Addr, "error", err)
						_ = shutdowner.Shutdown()
					}
				}()

				return nil
			},
			OnStop: func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
				defer cancel()

				return srv.Shutdown(ctx)
			},
		})
	}
}
