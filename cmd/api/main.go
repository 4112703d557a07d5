package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/tireshop/backoffice/internal/audit"
	"github.com/tireshop/backoffice/internal/config"
	dbpkg "github.com/tireshop/backoffice/internal/db"
	infraRepo "github.com/tireshop/backoffice/internal/infra/repository"
	"github.com/tireshop/backoffice/internal/jobs"
	"github.com/tireshop/backoffice/internal/logger"
	"github.com/tireshop/backoffice/internal/notify"
	"github.com/tireshop/backoffice/internal/routes"
	"github.com/tireshop/backoffice/internal/timezone"
	ucDeposit "github.com/tireshop/backoffice/internal/usecase/deposit"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database setup failed", zap.Error(err))
	}

	created, err := dbpkg.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatal("admin bootstrap failed", zap.Error(err))
	}
	if created {
		log.Info("admin account created", zap.String("email", cfg.AdminEmail))
	}

	// ======================================================
	// NOTIFICATIONS
	// ======================================================
	notifiers := notify.Multi{notify.NewLogNotifier(log)}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, notifications stay in the log", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			notifiers = append(notifiers, notify.NewRedisNotifier(rdb, cfg.NotifyChannel))
		}
	}

	clock := timezone.NewShopClock(cfg.ShopTimezone)
	dispatcher := audit.NewDispatcher(audit.New(db), log)

	// ======================================================
	// DEPOSIT SWEEP
	// ======================================================
	sweeper, err := jobs.NewDepositSweeper(
		cfg.DepositSweepSpec,
		ucDeposit.NewSweepDeposits(infraRepo.NewDepositGormRepository(db), notifiers, clock, log),
		log,
	)
	if err != nil {
		log.Fatal("sweeper setup failed", zap.Error(err))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   log,
		Clock:    clock,
		Notifier: notifiers,
		Audit:    dispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("timezone", clock.Location().String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	wg.Wait()
	dispatcher.Close()
}
