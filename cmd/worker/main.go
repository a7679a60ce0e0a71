package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/punto-pos/pos-backend/config"
	cronjob "github.com/punto-pos/pos-backend/internal/archive/cron"
	archiverepo "github.com/punto-pos/pos-backend/internal/archive/repository"
	archiveservice "github.com/punto-pos/pos-backend/internal/archive/service"
	"github.com/punto-pos/pos-backend/internal/bootstrap"
	"github.com/punto-pos/pos-backend/internal/logging"
	"github.com/punto-pos/pos-backend/internal/orders/events"
	ordersrepo "github.com/punto-pos/pos-backend/internal/orders/repository"
)

func main() {
	once := flag.Bool("once", false, "run the archive job immediately and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	logger := logging.New("pos-worker")

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

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	publisher := events.NewPublisher(rdb)
	orderRepo := ordersrepo.NewOrderRepository(fb.Firestore, publisher)
	archiveRepo := archiverepo.NewArchiveRepository(pool)
	archiveSvc := archiveservice.NewArchiveService(orderRepo, archiveRepo, logger)

	if *once {
		if err := archiveSvc.Run(ctx); err != nil {
			log.Fatalf("archive: %v", err)
		}
		return
	}

	scheduler := cronjob.NewScheduler(archiveSvc)
	scheduler.Start()
	defer scheduler.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutdown", "worker stopping", nil)
}
