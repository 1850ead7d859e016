package service

import (
	"context"
	"testing"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/internal/infrastructure/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingPackage_SingleDefaultPerCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.pricing.CreatePackage(ctx, &PricingPackageInput{
		Name: "Siang", Category: enum.DurationTypeHourly, HourlyRate: decPtr("40000"), IsDefault: true,
	})
	require.NoError(t, err)
	second, err := env.pricing.CreatePackage(ctx, &PricingPackageInput{
		Name: "Malam", Category: enum.DurationTypeHourly, HourlyRate: decPtr("60000"), IsDefault: true,
	})
	require.NoError(t, err)

	reloaded, err := env.pricing.GetPackage(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)

	current, err := env.pricing.GetPackage(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, current.IsDefault)

	mode, err := env.pricing.ResolveBillingMode(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.DurationTypeHourly, mode.Mode)
	assertAmount(t, "60000", mode.Rate)
}

func TestPricingPackage_CreateInactive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inactive := false

	pkg, err := env.pricing.CreatePackage(ctx, &PricingPackageInput{
		Name: "Promo", Category: enum.DurationTypeHourly, HourlyRate: decPtr("30000"), IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, pkg.IsActive)

	var stored entity.PricingPackage
	require.NoError(t, env.db.First(&stored, "id = ?", pkg.ID).Error)
	assert.False(t, stored.IsActive)

	_, err = env.pricing.ResolveBillingMode(ctx, pkg.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	active, err := env.pricing.ListPackages(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRepositoryCreate_KeepsInactiveFlag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	table := &entity.Table{Name: "Gudang", IsActive: false}
	require.NoError(t, repository.NewTableRepository(env.db).Create(ctx, table))
	assert.False(t, env.reloadTable(t, table.ID).IsActive)

	category := &entity.FnbCategory{Name: "Arsip", IsActive: false}
	require.NoError(t, repository.NewFnbCategoryRepository(env.db).Create(ctx, category))
	var storedCategory entity.FnbCategory
	require.NoError(t, env.db.First(&storedCategory, "id = ?", category.ID).Error)
	assert.False(t, storedCategory.IsActive)

	open := &entity.Table{Name: "Meja 9", IsActive: true}
	require.NoError(t, repository.NewTableRepository(env.db).Create(ctx, open))
	assert.True(t, env.reloadTable(t, open.ID).IsActive)
}

func TestPricingPackage_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.pricing.CreatePackage(context.Background(), &PricingPackageInput{
		Name: "Broken", Category: enum.DurationTypePerMinute,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindInvalidArgument, appErr.Kind)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "per_minute_rate", appErr.Errors[0].Field)
}

func TestPricingPackage_DeleteGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	used := env.hourlyPackage(t, "50000")
	unused := env.hourlyPackage(t, "45000")
	table := env.table(t, "T1")
	env.start(t, table.ID, used.ID)

	err := env.pricing.DeletePackage(ctx, used.ID)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	require.NoError(t, env.pricing.DeletePackage(ctx, unused.ID))
	_, err = env.pricing.GetPackage(ctx, unused.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestTable_CreateDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	env.table(t, "T1")

	_, err := env.tables.CreateTable(context.Background(), &TableInput{Name: "T1", HourlyRate: dec("40000")})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestTable_ManualStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")

	updated, err := env.tables.UpdateStatus(ctx, table.ID, enum.TableStatusMaintenance)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusMaintenance, updated.Status)

	_, err = env.sessions.StartSession(ctx, &StartSessionInput{
		TableID: table.ID, CustomerName: "Budi", Mode: enum.SessionModeOpen, PricingPackageID: pkg.ID,
	})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = env.tables.UpdateStatus(ctx, table.ID, enum.TableStatusOccupied)
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))

	updated, err = env.tables.UpdateStatus(ctx, table.ID, enum.TableStatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusAvailable, updated.Status)
}

func TestTable_DetailAndDeactivate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pkg := env.hourlyPackage(t, "50000")
	table := env.table(t, "T1")
	session := env.start(t, table.ID, pkg.ID)

	detail, err := env.tables.GetTable(ctx, table.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.ActiveSession)
	assert.Equal(t, session.ID, detail.ActiveSession.ID)

	_, err = env.tables.SetActive(ctx, table.ID, false)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = env.billing.EndSession(ctx, session.ID, nil)
	require.NoError(t, err)

	deactivated, err := env.tables.SetActive(ctx, table.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	tables, err := env.tables.ListTables(ctx, &domainRepo.TableFilterParams{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestMenu_CategoryDeleteGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := env.item(t, "Es Teh", "10000", 5)

	err := env.menu.DeleteCategory(ctx, item.CategoryID)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	require.NoError(t, env.menu.DeleteItem(ctx, item.ID))
	require.NoError(t, env.menu.DeleteCategory(ctx, item.CategoryID))
}

func TestMenu_LowStockAndRestock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	low := env.item(t, "Es Teh", "10000", 1)
	env.item(t, "Kopi", "15000", 20)

	items, err := env.menu.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)

	_, err = env.menu.Restock(ctx, low.ID, 0)
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))

	restocked, err := env.menu.Restock(ctx, low.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 10, restocked.StockQuantity)
	assert.False(t, restocked.IsLowStock())
}

func TestMenu_ListItemsByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tea := env.item(t, "Es Teh", "10000", 5)
	env.item(t, "Kopi", "15000", 5)

	result, err := env.menu.ListItems(ctx, &domainRepo.FnbItemFilterParams{CategoryID: &tea.CategoryID})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, tea.ID, result.Items[0].ID)

	searched, err := env.menu.ListItems(ctx, &domainRepo.FnbItemFilterParams{Search: "kop"})
	require.NoError(t, err)
	assert.Len(t, searched.Items, 1)
}

func TestStaff_CRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	staff, err := env.staff.CreateStaff(ctx, &StaffInput{Name: "Dewi", Phone: strPtr("0813")})
	require.NoError(t, err)
	assert.Equal(t, "cashier", staff.Position)

	inactive := false
	updated, err := env.staff.UpdateStaff(ctx, staff.ID, &StaffInput{Name: "Dewi", Position: "manager", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "manager", updated.Position)

	active, err := env.staff.ListStaff(ctx, true, "")
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, env.staff.DeleteStaff(ctx, staff.ID))
	_, err = env.staff.GetStaff(ctx, staff.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
