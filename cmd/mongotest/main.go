// Command mongotest runs the HTTP-to-MongoDB proxy: JSON requests in,
// driver operations out, with one bounded pool of clients keyed by
// connection string.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/DoubleNemesis/mongo-test/backend"
	"github.com/DoubleNemesis/mongo-test/config"
	"github.com/DoubleNemesis/mongo-test/metrics/prom"
	"github.com/DoubleNemesis/mongo-test/pool"
	"github.com/DoubleNemesis/mongo-test/server"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(lvl)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	clients := pool.New[*mongo.Client](pool.Options[*mongo.Client]{
		Capacity: cfg.PoolCapacity,
		Dial:     backend.Dial,
		OnEvict:  backend.Releaser(log),
		Metrics:  prom.New(reg, "mongotest", "pool", nil),
	})
	defer clients.Close()

	svc := backend.NewService(clients, cfg.MongoURI, log)
	handler := server.New(svc, log, server.Options{
		AllowedOrigins: cfg.CORSOrigins,
		Registry:       reg,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Int("pool_capacity", cfg.PoolCapacity).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("shutdown complete")
}
