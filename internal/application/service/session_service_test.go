package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSession_OccupiesTable(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")

	session := env.start(t, table.ID, pkg.ID)

	assert.Equal(t, enum.SessionStatusActive, session.Status)
	assert.Equal(t, 0, session.PlannedDuration)
	assert.Equal(t, enum.DurationTypeHourly, session.DurationType)
	assert.Equal(t, enum.TableStatusOccupied, env.reloadTable(t, table.ID).Status)
}

func TestStartSession_PlannedDuration(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.perMinutePackage(t, "500")
	table := env.table(t, "T1")
	planned := 90

	session, err := env.sessions.StartSession(context.Background(), &StartSessionInput{
		TableID:          table.ID,
		CustomerName:     "Sari",
		Mode:             enum.SessionModePlanned,
		PlannedDuration:  &planned,
		PricingPackageID: pkg.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 90, session.PlannedDuration)
	assert.Equal(t, enum.DurationTypePerMinute, session.DurationType)
}

func TestStartSession_Validation(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")

	tests := []struct {
		name  string
		input *StartSessionInput
		kind  apperror.Kind
	}{
		{
			name:  "missing customer name",
			input: &StartSessionInput{TableID: table.ID, Mode: enum.SessionModeOpen, PricingPackageID: pkg.ID},
			kind:  apperror.KindInvalidArgument,
		},
		{
			name:  "planned without duration",
			input: &StartSessionInput{TableID: table.ID, CustomerName: "Budi", Mode: enum.SessionModePlanned, PricingPackageID: pkg.ID},
			kind:  apperror.KindInvalidArgument,
		},
		{
			name:  "unknown package",
			input: &StartSessionInput{TableID: table.ID, CustomerName: "Budi", Mode: enum.SessionModeOpen, PricingPackageID: uuid.New()},
			kind:  apperror.KindNotFound,
		},
		{
			name:  "unknown table",
			input: &StartSessionInput{TableID: uuid.New(), CustomerName: "Budi", Mode: enum.SessionModeOpen, PricingPackageID: pkg.ID},
			kind:  apperror.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.sessions.StartSession(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}
	assert.Equal(t, enum.TableStatusAvailable, env.reloadTable(t, table.ID).Status)
}

func TestStartSession_InactivePackage(t *testing.T) {
	env := newTestEnv(t)
	inactive := false
	pkg, err := env.pricing.CreatePackage(context.Background(), &PricingPackageInput{
		Name:       "Retired",
		Category:   enum.DurationTypeHourly,
		HourlyRate: decPtr("30000"),
		IsActive:   &inactive,
	})
	require.NoError(t, err)
	table := env.table(t, "T1")

	_, err = env.sessions.StartSession(context.Background(), &StartSessionInput{
		TableID:          table.ID,
		CustomerName:     "Budi",
		Mode:             enum.SessionModeOpen,
		PricingPackageID: pkg.ID,
	})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestStartSession_OccupiedTableConflict(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")
	env.start(t, table.ID, pkg.ID)

	_, err := env.sessions.StartSession(context.Background(), &StartSessionInput{
		TableID:          table.ID,
		CustomerName:     "Andi",
		Mode:             enum.SessionModeOpen,
		PricingPackageID: pkg.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	var count int64
	require.NoError(t, env.db.Model(&entity.TableSession{}).Where("table_id = ?", table.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, enum.TableStatusOccupied, env.reloadTable(t, table.ID).Status)
}

func TestStartSession_ConcurrentStartsOnSameTable(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.sessions.StartSession(context.Background(), &StartSessionInput{
				TableID:          table.ID,
				CustomerName:     "Budi",
				Mode:             enum.SessionModeOpen,
				PricingPackageID: pkg.ID,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if apperror.KindOf(err) == apperror.KindConflict {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	var active int64
	require.NoError(t, env.db.Model(&entity.TableSession{}).
		Where("table_id = ? AND status = ?", table.ID, enum.SessionStatusActive).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}

func TestMoveTable_TakesPendingOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pkg := env.hourlyPackage(t, "50000")
	t1 := env.table(t, "T1")
	t2 := env.table(t, "T2")
	item := env.item(t, "Es Teh", "10000", 5)
	session := env.start(t, t1.ID, pkg.ID)

	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		Items:   []OrderLineInput{{ItemID: item.ID, Quantity: 1}},
		TableID: &t1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, enum.FnbOrderStatusPending, order.Status)

	moved, err := env.sessions.MoveTable(ctx, session.ID, t2.ID)
	require.NoError(t, err)

	assert.Equal(t, t2.ID, moved.TableID)
	assert.Equal(t, enum.TableStatusAvailable, env.reloadTable(t, t1.ID).Status)
	assert.Equal(t, enum.TableStatusOccupied, env.reloadTable(t, t2.ID).Status)
	reloaded := env.reloadOrder(t, order.ID)
	require.NotNil(t, reloaded.TableID)
	assert.Equal(t, t2.ID, *reloaded.TableID)
}

func TestMoveTable_TargetOccupied(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.hourlyPackage(t, "50000")
	t1 := env.table(t, "T1")
	t2 := env.table(t, "T2")
	session := env.start(t, t1.ID, pkg.ID)
	env.start(t, t2.ID, pkg.ID)

	_, err := env.sessions.MoveTable(context.Background(), session.ID, t2.ID)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, enum.TableStatusOccupied, env.reloadTable(t, t1.ID).Status)
}

func TestUpdateDuration_KeepsFirstOriginalDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")
	session := env.start(t, table.ID, pkg.ID)

	setClock(t, baseTime.Add(30*time.Minute))
	first, err := env.sessions.UpdateDuration(ctx, session.ID, enum.DurationTypeHourly, 45)
	require.NoError(t, err)
	require.NotNil(t, first.OriginalDuration)
	assert.Equal(t, 30, *first.OriginalDuration)
	assert.Equal(t, 45, *first.ActualDuration)

	setClock(t, baseTime.Add(50*time.Minute))
	second, err := env.sessions.UpdateDuration(ctx, session.ID, enum.DurationTypePerMinute, 55)
	require.NoError(t, err)
	assert.Equal(t, 30, *second.OriginalDuration)
	assert.Equal(t, 55, *second.ActualDuration)
	assert.Equal(t, enum.DurationTypePerMinute, second.DurationType)
}

func TestUpdateDuration_InactiveSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")
	session := env.start(t, table.ID, pkg.ID)
	_, err := env.sessions.CancelSession(ctx, session.ID, nil)
	require.NoError(t, err)

	_, err = env.sessions.UpdateDuration(ctx, session.ID, enum.DurationTypeHourly, 60)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = env.sessions.UpdateDuration(ctx, session.ID, enum.DurationType("weekly"), 60)
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))
}

func TestCancelSession_ReleasesTable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")
	session := env.start(t, table.ID, pkg.ID)

	setClock(t, baseTime.Add(10*time.Minute))
	cancelled, err := env.sessions.CancelSession(ctx, session.ID, strPtr("customer left"))
	require.NoError(t, err)

	assert.Equal(t, enum.SessionStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.EndTime)
	assert.Equal(t, enum.TableStatusAvailable, env.reloadTable(t, table.ID).Status)

	_, err = env.sessions.CancelSession(ctx, session.ID, nil)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestRateSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")
	session := env.start(t, table.ID, pkg.ID)

	_, err := env.sessions.RateSession(ctx, session.ID, 5)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = env.billing.EndSession(ctx, session.ID, nil)
	require.NoError(t, err)

	_, err = env.sessions.RateSession(ctx, session.ID, 6)
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))

	rated, err := env.sessions.RateSession(ctx, session.ID, 4)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 4, *rated.Rating)
}

func TestListSessions_FiltersByStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pkg := env.hourlyPackage(t, "50000")
	t1 := env.table(t, "T1")
	t2 := env.table(t, "T2")
	env.start(t, t1.ID, pkg.ID)
	second := env.start(t, t2.ID, pkg.ID)
	_, err := env.sessions.CancelSession(ctx, second.ID, nil)
	require.NoError(t, err)

	active, err := env.sessions.ListActiveSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	status := enum.SessionStatusCancelled
	result, err := env.sessions.ListSessions(ctx, &domainRepo.SessionFilterParams{Status: &status})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, second.ID, result.Items[0].ID)
	assert.Equal(t, int64(1), result.Pagination.Total)
}
