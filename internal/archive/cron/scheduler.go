package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/punto-pos/pos-backend/internal/archive/service"
)

type Scheduler struct {
	archiveService *service.ArchiveService
	cron           *cron.Cron
}

func NewScheduler(archiveService *service.ArchiveService) *Scheduler {
	return &Scheduler{
		archiveService: archiveService,
		cron:           cron.New(cron.WithSeconds()),
	}
}

// Start schedules the nightly archive run (12:00 AM).
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("0 0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := s.archiveService.Run(ctx); err != nil {
			log.Printf("Nightly archive failed: %v", err)
			return
		}
		log.Println("Nightly archive completed at:", time.Now().Format(time.RFC1123))
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (archiving nightly at 12:00AM)")
	s.cron.Start()
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
