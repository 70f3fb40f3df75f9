package repository_test

import (
	"context"
	"testing"
	"time"

	"byblos-atelier/internal/database"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/repository"
	"byblos-atelier/internal/testutil"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *pgxpool.Pool {
	pool := testutil.Postgres(t)
	testutil.Truncate(t, pool)
	return pool
}

func createOrganizer(t *testing.T, pool *pgxpool.Pool, email string) *model.Account {
	t.Helper()
	org, err := repository.NewOrganizerRepository(pool).Create(context.Background(), &model.Account{
		Name: "Org", Email: email, PasswordHash: "x",
	})
	require.NoError(t, err)
	return org
}

func createEvent(t *testing.T, pool *pgxpool.Pool, event *model.Event) *model.Event {
	t.Helper()
	var created *model.Event
	err := database.NewTxManager(pool).WithinTx(context.Background(), func(tx pgx.Tx) error {
		var err error
		created, err = repository.NewEventRepository(pool).Create(context.Background(), tx, event)
		return err
	})
	require.NoError(t, err)
	return created
}

func createTicket(t *testing.T, pool *pgxpool.Pool, ticket *model.Ticket) *model.Ticket {
	t.Helper()
	var created *model.Ticket
	err := database.NewTxManager(pool).WithinTx(context.Background(), func(tx pgx.Tx) error {
		var err error
		created, err = repository.NewTicketRepository(pool).Create(context.Background(), tx, ticket)
		return err
	})
	require.NoError(t, err)
	return created
}

func recompute(t *testing.T, pool *pgxpool.Pool, organizerID int, now time.Time) *model.DashboardStats {
	t.Helper()
	var stats *model.DashboardStats
	err := database.NewTxManager(pool).WithinTx(context.Background(), func(tx pgx.Tx) error {
		var err error
		stats, err = repository.NewDashboardStatsRepository(pool).Recompute(context.Background(), tx, organizerID, now)
		return err
	})
	require.NoError(t, err)
	return stats
}

func TestAccountRepository_EmailUniquePerTable(t *testing.T) {
	pool := setup(t)
	ctx := context.Background()

	_, err := repository.NewOrganizerRepository(pool).Create(ctx, &model.Account{Name: "A", Email: "Same@Example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = repository.NewOrganizerRepository(pool).Create(ctx, &model.Account{Name: "B", Email: "same@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)

	seller, err := repository.NewSellerRepository(pool).Create(ctx, &model.Account{Name: "C", Email: "same@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleSeller, seller.Role)
}

func TestAccountRepository_ResetToken(t *testing.T) {
	pool := setup(t)
	repo := repository.NewSellerRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	seller, err := repo.Create(ctx, &model.Account{Name: "S", Email: "s@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	require.NoError(t, repo.SetResetToken(ctx, seller.ID, "hash", now.Add(time.Hour)))

	found, err := repo.FindByResetToken(ctx, "hash", now)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, found.ID)

	_, err = repo.FindByResetToken(ctx, "hash", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestTicketRepository_Aggregates(t *testing.T) {
	pool := setup(t)
	ctx := context.Background()
	org := createOrganizer(t, pool, "org@example.com")
	event := createEvent(t, pool, &model.Event{
		OrganizerID: org.ID, Name: "Expo", StartDate: time.Now().Add(24 * time.Hour),
		Status: model.EventStatusPublished, TicketQuantity: 50, TicketPrice: decimal.NewFromInt(1000),
	})

	for i, status := range []model.TicketStatus{
		model.TicketStatusPaid, model.TicketStatusPaid, model.TicketStatusPaid, model.TicketStatusPending,
	} {
		createTicket(t, pool, &model.Ticket{
			EventID: event.ID, OrganizerID: org.ID, CustomerName: "C", CustomerEmail: "c@example.com",
			Price: decimal.NewFromInt(1000), Status: status, TicketNumber: "TKT-AGG-" + string(rune('A'+i)),
		})
	}

	sales, err := repository.NewTicketRepository(pool).SalesByEvent(ctx, []int{event.ID})

	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 3, sales[0].Sold)
	assert.Equal(t, 4, sales[0].TotalCreated)
	assert.True(t, decimal.NewFromInt(3000).Equal(sales[0].Revenue))
}

func TestTicketRepository_DuplicateNumber(t *testing.T) {
	pool := setup(t)
	org := createOrganizer(t, pool, "org@example.com")
	event := createEvent(t, pool, &model.Event{OrganizerID: org.ID, Name: "Expo", StartDate: time.Now(), Status: model.EventStatusDraft})
	ticket := &model.Ticket{
		EventID: event.ID, OrganizerID: org.ID, CustomerName: "C", CustomerEmail: "c@example.com",
		Status: model.TicketStatusPaid, TicketNumber: "PAY-1",
	}
	createTicket(t, pool, ticket)

	err := database.NewTxManager(pool).WithinTx(context.Background(), func(tx pgx.Tx) error {
		_, err := repository.NewTicketRepository(pool).Create(context.Background(), tx, ticket)
		return err
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicateTicketNumber)
}

func TestTicketRepository_CheckIn(t *testing.T) {
	pool := setup(t)
	repo := repository.NewTicketRepository(pool)
	ctx := context.Background()
	org := createOrganizer(t, pool, "org@example.com")
	event := createEvent(t, pool, &model.Event{OrganizerID: org.ID, Name: "Expo", StartDate: time.Now(), Status: model.EventStatusPublished})
	paid := createTicket(t, pool, &model.Ticket{
		EventID: event.ID, OrganizerID: org.ID, CustomerName: "C", CustomerEmail: "c@example.com",
		Status: model.TicketStatusPaid, TicketNumber: "TKT-PAID",
	})
	pending := createTicket(t, pool, &model.Ticket{
		EventID: event.ID, OrganizerID: org.ID, CustomerName: "C", CustomerEmail: "c@example.com",
		Status: model.TicketStatusPending, TicketNumber: "TKT-PENDING",
	})

	checked, err := repo.CheckIn(ctx, paid.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, checked.IsCheckedIn())

	_, err = repo.CheckIn(ctx, paid.ID, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrTicketAlreadyCheckedIn)

	_, err = repo.CheckIn(ctx, pending.ID, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrTicketNotValid)
}

func TestDashboardStatsRepository_Recompute(t *testing.T) {
	pool := setup(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	org := createOrganizer(t, pool, "org@example.com")

	createEvent(t, pool, &model.Event{OrganizerID: org.ID, Name: "Future", StartDate: now.Add(48 * time.Hour), Status: model.EventStatusPublished})
	past := now.Add(-48 * time.Hour)
	createEvent(t, pool, &model.Event{OrganizerID: org.ID, Name: "Past", StartDate: past, Status: model.EventStatusCompleted})
	ongoing := createEvent(t, pool, &model.Event{OrganizerID: org.ID, Name: "Now", StartDate: now.Add(-30 * time.Minute), Status: model.EventStatusPublished})
	createEvent(t, pool, &model.Event{OrganizerID: org.ID, Name: "Cancelled", StartDate: now.Add(time.Hour), Status: model.EventStatusCancelled})

	for i, email := range []string{"a@example.com", "A@example.com", "b@example.com"} {
		createTicket(t, pool, &model.Ticket{
			EventID: ongoing.ID, OrganizerID: org.ID, CustomerName: "C", CustomerEmail: email,
			Price: decimal.NewFromInt(1000), Status: model.TicketStatusPaid, TicketNumber: "TKT-DASH-" + string(rune('A'+i)),
		})
	}

	t.Run("Counts", func(t *testing.T) {
		stats := recompute(t, pool, org.ID, now)

		assert.Equal(t, 3, stats.TotalEvents)
		assert.Equal(t, 1, stats.UpcomingEvents)
		assert.Equal(t, 1, stats.PastEvents)
		assert.Equal(t, 1, stats.CurrentEvents)
		assert.Equal(t, 3, stats.TotalTicketsSold)
		assert.True(t, decimal.NewFromInt(3000).Equal(stats.TotalRevenue))
		assert.Equal(t, 2, stats.TotalAttendees)
	})

	t.Run("Repairs missing end dates", func(t *testing.T) {
		event, err := repository.NewEventRepository(pool).FindByID(context.Background(), ongoing.ID)
		require.NoError(t, err)
		require.NotNil(t, event.EndDate)
		assert.True(t, event.EndDate.Equal(event.StartDate.Add(2*time.Hour)))
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := recompute(t, pool, org.ID, now)
		second := recompute(t, pool, org.ID, now.Add(time.Minute))

		assert.Equal(t, first.TotalTicketsSold, second.TotalTicketsSold)
		assert.True(t, first.UpdatedAt.Equal(second.UpdatedAt))
	})
}

func TestTicketTypeRepository_ReplaceClearsBounds(t *testing.T) {
	pool := setup(t)
	repo := repository.NewTicketTypeRepository(pool)
	ctx := context.Background()
	org := createOrganizer(t, pool, "org@example.com")
	event := createEvent(t, pool, &model.Event{OrganizerID: org.ID, Name: "Expo", StartDate: time.Now(), Status: model.EventStatusDraft})

	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	desc := "front rows"
	var created *model.TicketType
	err := database.NewTxManager(pool).WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = repo.Create(ctx, tx, &model.TicketType{
			EventID: event.ID, Name: "VIP", Description: &desc, Price: decimal.NewFromInt(100),
			Quantity: 10, SalesStartDate: &start, SalesEndDate: &end,
		})
		return err
	})
	require.NoError(t, err)

	var replaced *model.TicketType
	err = database.NewTxManager(pool).WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		replaced, err = repo.Replace(ctx, tx, created.ID, &model.TicketType{
			EventID: event.ID, Name: "VIP", Price: decimal.NewFromInt(120), Quantity: 12, SalesEndDate: &end,
		})
		return err
	})

	require.NoError(t, err)
	assert.Nil(t, replaced.SalesStartDate)
	assert.Nil(t, replaced.Description)
	require.NotNil(t, replaced.SalesEndDate)
	assert.True(t, replaced.SalesEndDate.Equal(end))
	assert.Equal(t, 12, replaced.Quantity)

	err = database.NewTxManager(pool).WithinTx(ctx, func(tx pgx.Tx) error {
		_, err := repo.Replace(ctx, tx, created.ID+100, &model.TicketType{Name: "Ghost"})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrTicketTypeNotFound)
}

func TestDashboardStatsRepository_RecomputeIsolatesOrganizers(t *testing.T) {
	pool := setup(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	first := createOrganizer(t, pool, "first@example.com")
	second := createOrganizer(t, pool, "second@example.com")

	firstEvent := createEvent(t, pool, &model.Event{OrganizerID: first.ID, Name: "A", StartDate: now.Add(time.Hour), Status: model.EventStatusPublished})
	secondEvent := createEvent(t, pool, &model.Event{OrganizerID: second.ID, Name: "B", StartDate: now.Add(time.Hour), Status: model.EventStatusPublished})
	createTicket(t, pool, &model.Ticket{
		EventID: secondEvent.ID, OrganizerID: second.ID, CustomerName: "C", CustomerEmail: "c@example.com",
		Price: decimal.NewFromInt(400), Status: model.TicketStatusPaid, TicketNumber: "TKT-ISO-B",
	})

	stats := recompute(t, pool, first.ID, now)
	assert.Equal(t, 1, stats.TotalEvents)
	assert.Zero(t, stats.TotalTicketsSold)

	createTicket(t, pool, &model.Ticket{
		EventID: firstEvent.ID, OrganizerID: first.ID, CustomerName: "C", CustomerEmail: "c@example.com",
		Price: decimal.NewFromInt(250), Status: model.TicketStatusPaid, TicketNumber: "TKT-ISO-A",
	})
	after := recompute(t, pool, first.ID, now)
	assert.Equal(t, 1, after.TotalTicketsSold)
	assert.True(t, decimal.NewFromInt(250).Equal(after.TotalRevenue))

	_, err := repository.NewDashboardStatsRepository(pool).FindByOrganizerID(context.Background(), second.ID)
	assert.ErrorIs(t, err, apperrors.ErrStatsNotFound)

	untouched, err := repository.NewEventRepository(pool).FindByID(context.Background(), secondEvent.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched.EndDate)
}
