// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	auditpkg "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/audit"
	auditstore "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/audit/store"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/password"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/service"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/session"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/auth/token"
	identitystore "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity/store"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/config"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/database"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/httpserver"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/logger"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/metrics"
	httptransport "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/transport/http"
)

func main() {
	log := logger.New()
	if err := run(log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		return err
	}
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	m := metrics.New(prometheus.DefaultRegisterer)

	identities := identitystore.NewPostgresStore(pool)
	recorder := auditpkg.NewRecorder(auditstore.NewPostgresStore(pool), cfg.AuditBuffer, log, m)

	tokens, err := token.NewService(cfg.SigningKey, token.DefaultTTL, nil)
	if err != nil {
		return err
	}
	hasher := password.NewHasher(cfg.BcryptCost)

	authService, err := service.New(identities, hasher, tokens, recorder, m, log)
	if err != nil {
		return err
	}
	resolver := session.NewResolver(tokens, identities)

	router := httptransport.NewRouter(
		httptransport.NewAuthHandler(authService, token.DefaultTTL, cfg.Production),
		httptransport.NewAuditHandler(recorder),
		resolver,
		promhttp.Handler(),
		log,
	)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting hr auth gateway", "addr", cfg.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return recorder.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
