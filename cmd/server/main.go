// main wires high-level dependencies and keeps the server lifecycle
// small. Business logic lives in the internal service packages.
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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	attendancestore "gymdesk/internal/attendance/store"
	"gymdesk/internal/gym"
	"gymdesk/internal/identity"
	identitystore "gymdesk/internal/identity/store"
	memberstore "gymdesk/internal/member/store"
	paymentstore "gymdesk/internal/payment/store"
	"gymdesk/internal/platform/config"
	"gymdesk/internal/platform/httpserver"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/metrics"
	"gymdesk/internal/platform/postgres"
	platformredis "gymdesk/internal/platform/redis"
	"gymdesk/internal/platform/token"
	httptransport "gymdesk/internal/transport/http"
	"gymdesk/pkg/domain"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	var (
		members    memberstore.Store
		checkIns   attendancestore.Store
		payments   paymentstore.Store
		identities identitystore.Store
	)

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}
		members = memberstore.NewPostgres(db)
		checkIns = attendancestore.NewPostgres(db)
		payments = paymentstore.NewPostgres(db)
		identities = identitystore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		members = memberstore.NewInMemory()
		checkIns = attendancestore.NewInMemory()
		payments = paymentstore.NewInMemory()
		identities = identitystore.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	if cfg.RedisURL != "" {
		rdb, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		identities = identitystore.NewRoleCache(identities, rdb.Client, config.RoleCacheTTL)
		log.Info("role cache enabled")
	}

	if cfg.BootstrapAdmin != "" {
		principal, err := domain.ParsePrincipal(cfg.BootstrapAdmin)
		if err != nil {
			log.Error("invalid bootstrap admin principal", "error", err)
			os.Exit(1)
		}
		if err := identities.AssignRole(ctx, principal, domain.RoleAdmin); err != nil {
			log.Error("failed to seed bootstrap admin", "error", err)
			os.Exit(1)
		}
		log.Info("bootstrap admin seeded", "principal", principal.String())
	}

	resolver := identity.NewResolver(identities, members)
	svc := gym.New(log, m, resolver, members, checkIns, payments, identities)

	validator := token.NewValidator(cfg.JWTSigningKey)
	router := httptransport.NewRouter(svc, validator, log, m, cfg.RequestTimeout)

	srv := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	log.Info("starting gymdesk", "addr", cfg.Addr, "metrics_addr", cfg.MetricsAddr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
