package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hwanjo/swapdesk/params"
	"github.com/hwanjo/swapdesk/pkg/api"
	"github.com/hwanjo/swapdesk/pkg/engine"
	"github.com/hwanjo/swapdesk/pkg/storage"
	"github.com/hwanjo/swapdesk/pkg/swap"
	"github.com/hwanjo/swapdesk/pkg/util"
)

func main() {
	cfg := params.LoadFromEnv("")

	logger, err := util.NewLoggerWithFile(cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		sugar.Fatalw("storage_open_failed", "path", cfg.Storage.DBPath, "err", err)
	}
	defer store.Close()
	sugar.Infow("storage_opened", "path", cfg.Storage.DBPath)

	oracle := swap.ThresholdOracle{MaxPrice: cfg.Oracle.MaxPrice}
	eng := engine.New(store, oracle, util.RealClock{}, sugar)

	srv := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: api.NewServer(eng, sugar).Handler(),
	}
	go func() {
		sugar.Infow("api_listening", "addr", cfg.API.ListenAddr)
		if e := srv.ListenAndServe(); !errors.Is(e, http.ErrServerClosed) {
			sugar.Errorw("api_serve_failed", "err", e)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("api_shutdown_failed", "err", err)
	}
	sugar.Infow("shutdown_complete")
}
