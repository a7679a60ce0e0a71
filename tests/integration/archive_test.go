package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	archiverepo "github.com/punto-pos/pos-backend/internal/archive/repository"
	archiveservice "github.com/punto-pos/pos-backend/internal/archive/service"
	"github.com/punto-pos/pos-backend/internal/logging"
	"github.com/punto-pos/pos-backend/internal/orders/domain"
)

// testDSN resolves the test database DSN from TEST_DB_DSN or the individual
// TEST_DB_* variables. Skips the test when neither is set.
func testDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn != "" {
		return dsn
	}

	host := os.Getenv("TEST_DB_HOST")
	port := os.Getenv("TEST_DB_PORT")
	user := os.Getenv("TEST_DB_USER")
	password := os.Getenv("TEST_DB_PASSWORD")
	dbname := os.Getenv("TEST_DB_NAME")

	if host == "" || port == "" || user == "" || dbname == "" {
		t.Skip("TEST_DB_DSN or TEST_DB_* environment variables not set, skipping PostgreSQL integration test")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func setupArchive(t *testing.T) (*archiverepo.ArchiveRepository, *sql.DB) {
	t.Helper()

	dsn := testDSN(t)
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := archiverepo.NewArchiveRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	// Separate plain database/sql handle for verification queries.
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, `truncate order_archive, daily_revenue`)
	require.NoError(t, err)

	return repo, db
}

func paidOrder(id string, placedAt time.Time, total float64) *domain.Order {
	return &domain.Order{
		ID:              id,
		ClientID:        "client-1",
		Date:            placedAt.Format(time.RFC3339Nano),
		State:           domain.StatusPaid,
		Table:           5,
		Total:           total,
		StatusUpdatedAt: placedAt.Add(30 * time.Minute).Format(time.RFC3339Nano),
		Lines: []domain.Line{
			{DishID: "pasta-id", Dish: "Pasta", Quantity: 2},
		},
	}
}

func TestArchiveInsertIsIdempotent(t *testing.T) {
	repo, db := setupArchive(t)
	ctx := context.Background()

	order := paidOrder("order-1", time.Now().UTC(), 20.00)

	inserted, err := repo.Insert(ctx, order)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Insert(ctx, order)
	require.NoError(t, err)
	assert.False(t, inserted, "re-archiving the same order must be a no-op")

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`select count(*) from order_archive where id_order = $1`, order.ID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestArchiveDailyRevenue(t *testing.T) {
	repo, db := setupArchive(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	_, err := repo.Insert(ctx, paidOrder("order-1", day, 20.00))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, paidOrder("order-2", day.Add(2*time.Hour), 12.50))
	require.NoError(t, err)

	require.NoError(t, repo.UpsertDailyRevenue(ctx, day))

	var orders int
	var revenue float64
	require.NoError(t, db.QueryRowContext(ctx,
		`select orders, revenue from daily_revenue where day = $1`, "2026-08-28").
		Scan(&orders, &revenue))
	assert.Equal(t, 2, orders)
	assert.InDelta(t, 32.50, revenue, 0.001)

	// Re-running the upsert keeps the summary stable.
	require.NoError(t, repo.UpsertDailyRevenue(ctx, day))
	require.NoError(t, db.QueryRowContext(ctx,
		`select orders from daily_revenue where day = $1`, "2026-08-28").Scan(&orders))
	assert.Equal(t, 2, orders)
}

type staticOrderLister struct {
	orders []domain.Order
}

func (s *staticOrderLister) List(_ context.Context) ([]domain.Order, error) {
	return s.orders, nil
}

func TestArchiveServiceOnlyArchivesPaidOrders(t *testing.T) {
	repo, db := setupArchive(t)
	ctx := context.Background()

	day := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	open := paidOrder("order-open", day, 10.00)
	open.State = domain.StatusInProgress

	lister := &staticOrderLister{orders: []domain.Order{
		*paidOrder("order-paid", day, 20.00),
		*open,
	}}

	log := logging.New("archive-test")
	svc := archiveservice.NewArchiveService(lister, repo, log)
	require.NoError(t, svc.Run(ctx))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `select count(*) from order_archive`).Scan(&count))
	assert.Equal(t, 1, count, "only paid orders belong in the archive")

	var revenue float64
	require.NoError(t, db.QueryRowContext(ctx,
		`select revenue from daily_revenue where day = $1`, "2026-08-28").Scan(&revenue))
	assert.InDelta(t, 20.00, revenue, 0.001)
}
