package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punto-pos/pos-backend/internal/orders/domain"
)

// ArchiveRepository persists paid orders into Postgres for reporting. The
// document database stays the system of record; this is the audit trail the
// original app never kept.
type ArchiveRepository struct {
	db *pgxpool.Pool
}

func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// EnsureSchema creates the archive tables if they are missing.
func (r *ArchiveRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
create table if not exists order_archive (
    id_order    text primary key,
    id_client   text not null,
    placed_at   timestamptz not null,
    paid_at     timestamptz,
    table_no    int not null,
    total       numeric(10,2) not null,
    lines       jsonb not null,
    archived_at timestamptz not null default now()
);
create table if not exists daily_revenue (
    day     date primary key,
    orders  int not null,
    revenue numeric(12,2) not null
);
`
	if _, err := r.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure archive schema: %w", err)
	}
	return nil
}

// Insert archives one paid order. Re-archiving the same order is a no-op,
// which makes the nightly job safe to re-run.
func (r *ArchiveRepository) Insert(ctx context.Context, order *domain.Order) (bool, error) {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return false, fmt.Errorf("marshal order lines: %w", err)
	}

	placedAt, err := time.Parse(time.RFC3339Nano, order.Date)
	if err != nil {
		// Older documents carry second-precision timestamps.
		placedAt, err = time.Parse(time.RFC3339, order.Date)
		if err != nil {
			return false, fmt.Errorf("parse order date %q: %w", order.Date, err)
		}
	}

	var paidAt *time.Time
	if order.StatusUpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, order.StatusUpdatedAt); err == nil {
			paidAt = &t
		}
	}

	const q = `
insert into order_archive (id_order, id_client, placed_at, paid_at, table_no, total, lines)
values ($1, $2, $3, $4, $5, $6, $7)
on conflict (id_order) do nothing;
`
	tag, err := r.db.Exec(ctx, q, order.ID, order.ClientID, placedAt, paidAt, order.Table, order.Total, lines)
	if err != nil {
		return false, fmt.Errorf("insert archive row: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpsertDailyRevenue recomputes the revenue summary for one day from the
// archive rows.
func (r *ArchiveRepository) UpsertDailyRevenue(ctx context.Context, day time.Time) error {
	const q = `
insert into daily_revenue (day, orders, revenue)
select $1::date, count(*), coalesce(sum(total), 0)
from order_archive
where placed_at::date = $1::date
on conflict (day) do update
set orders = excluded.orders, revenue = excluded.revenue;
`
	if _, err := r.db.Exec(ctx, q, day.Format("2006-01-02")); err != nil {
		return fmt.Errorf("upsert daily revenue: %w", err)
	}
	return nil
}
