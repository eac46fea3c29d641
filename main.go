package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/linesmerrill/fiscal-cidadao/api/handlers"
	"github.com/linesmerrill/fiscal-cidadao/api/scheduler"
	"github.com/linesmerrill/fiscal-cidadao/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf, err := config.New()
	if err != nil {
		zap.S().Fatalw("failed to load config", "error", err)
	}

	a := handlers.App{Config: *conf}
	if err := a.Initialize(); err != nil {
		zap.S().Fatalw("failed to initialize app", "error", err)
	}
	defer a.Close()

	sched := scheduler.NewScheduler(a.Sessions, conf.SweepSchedule, conf.SessionIdleTimeout)
	if err := sched.Start(); err != nil {
		zap.S().Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              conf.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.S().Infow("fiscal-cidadao is up and running",
			"port", conf.Port,
			"url", conf.BaseUrl,
			"env", conf.Env,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.S().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorw("server stopped with error", "error", err)
	}
}
