package main

import (
	"context"
	"log"

	"github.com/punto-pos/pos-backend/config"
	"github.com/punto-pos/pos-backend/internal/bootstrap"
	"github.com/punto-pos/pos-backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()
	logger := logging.New("pos-api")

	fb, err := bootstrap.OpenFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fb.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	storage, err := bootstrap.OpenStorage(ctx, &cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "pos-api",
		Cfg:         cfg,
		Log:         logger,
		Firebase:    fb,
		Redis:       rdb,
		Storage:     storage,
	})

	logger.Info("startup", "listening", map[string]any{"port": cfg.Server.Port})
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
