package service

import (
	"context"
	"fmt"
	"time"

	"github.com/punto-pos/pos-backend/internal/logging"
	"github.com/punto-pos/pos-backend/internal/orders/domain"
)

type orderLister interface {
	List(ctx context.Context) ([]domain.Order, error)
}

type archiveStore interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, order *domain.Order) (bool, error)
	UpsertDailyRevenue(ctx context.Context, day time.Time) error
}

// ArchiveService copies paid orders from the document database into the
// Postgres archive and maintains the per-day revenue summary.
type ArchiveService struct {
	orders  orderLister
	archive archiveStore
	log     *logging.Logger
}

func NewArchiveService(orders orderLister, archive archiveStore, log *logging.Logger) *ArchiveService {
	return &ArchiveService{orders: orders, archive: archive, log: log}
}

// Run archives every Paid order and refreshes the revenue summary for each
// day that gained rows. Idempotent; safe to re-run.
func (s *ArchiveService) Run(ctx context.Context) error {
	if err := s.archive.EnsureSchema(ctx); err != nil {
		return err
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	archived := 0
	days := map[string]time.Time{}
	for i := range orders {
		order := &orders[i]
		if order.State != domain.StatusPaid {
			continue
		}

		inserted, err := s.archive.Insert(ctx, order)
		if err != nil {
			s.log.Error("archive_order", "failed to archive order", map[string]any{"id": order.ID}, err)
			continue
		}
		if inserted {
			archived++
			if placed, perr := time.Parse(time.RFC3339Nano, order.Date); perr == nil {
				day := placed.UTC().Truncate(24 * time.Hour)
				days[day.Format("2006-01-02")] = day
			}
		}
	}

	for _, day := range days {
		if err := s.archive.UpsertDailyRevenue(ctx, day); err != nil {
			s.log.Error("archive_revenue", "failed to refresh daily revenue", map[string]any{"day": day}, err)
		}
	}

	s.log.Info("archive_run", "archive run complete", map[string]any{"archived": archived})
	return nil
}
