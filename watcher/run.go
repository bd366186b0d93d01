package watcher

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const metricsShutdownTimeout = 5 * time.Second

// Serve runs w until ctx is done. If addr is not empty, metrics from g are
// exposed over HTTP at addr while w is running. A failure of either routine
// stops the other one.
func Serve(ctx context.Context, log *zap.Logger, w *Watcher, addr string, g prometheus.Gatherer) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return w.Run(ctx)
	})

	if addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(g, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: metricsShutdownTimeout,
		}

		eg.Go(func() error {
			log.Info("serving metrics", zap.String("address", addr))
			err := srv.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})

		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return eg.Wait()
}
