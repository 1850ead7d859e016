package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/infrastructure/database"
	"github.com/chalkboard-id/chalkboard-api/internal/infrastructure/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires every service against a private in-memory SQLite database
type testEnv struct {
	db       *gorm.DB
	pricing  *PricingService
	tables   *TableService
	staff    *StaffService
	sessions *SessionService
	billing  *BillingService
	orders   *FnbOrderService
	menu     *MenuService
	settings *SettingsService
	auth     *AuthService
	idem     *IdempotencyService
}

var baseTime = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))

	setClock(t, baseTime)

	transactor := repository.NewTransactor(db)
	tableRepo := repository.NewTableRepository(db)
	packageRepo := repository.NewPricingPackageRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	categoryRepo := repository.NewFnbCategoryRepository(db)
	itemRepo := repository.NewFnbItemRepository(db)
	orderRepo := repository.NewFnbOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	taxRepo := repository.NewTaxSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)
	idemRepo := repository.NewIdempotencyRepository(db)

	pricing := NewPricingService(transactor, packageRepo, tableRepo)
	return &testEnv{
		db:       db,
		pricing:  pricing,
		tables:   NewTableService(tableRepo, packageRepo, sessionRepo),
		staff:    NewStaffService(staffRepo),
		sessions: NewSessionService(transactor, sessionRepo, tableRepo, orderRepo, staffRepo, pricing),
		billing:  NewBillingService(transactor, sessionRepo, tableRepo, orderRepo, paymentRepo, staffRepo, taxRepo, pricing),
		orders:   NewFnbOrderService(transactor, orderRepo, itemRepo, sessionRepo, paymentRepo, staffRepo, taxRepo),
		menu:     NewMenuService(categoryRepo, itemRepo),
		settings: NewSettingsService(settingRepo, taxRepo),
		auth:     NewAuthService(userRepo, utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)),
		idem:     NewIdempotencyService(idemRepo),
	}
}

// setClock pins the service clock until the test ends
func setClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = prev })
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func (e *testEnv) hourlyPackage(t *testing.T, rate string) *entity.PricingPackage {
	t.Helper()
	pkg, err := e.pricing.CreatePackage(context.Background(), &PricingPackageInput{
		Name:       "Regular " + rate,
		Category:   enum.DurationTypeHourly,
		HourlyRate: decPtr(rate),
	})
	require.NoError(t, err)
	return pkg
}

func (e *testEnv) perMinutePackage(t *testing.T, rate string) *entity.PricingPackage {
	t.Helper()
	pkg, err := e.pricing.CreatePackage(context.Background(), &PricingPackageInput{
		Name:          "Per minute " + rate,
		Category:      enum.DurationTypePerMinute,
		PerMinuteRate: decPtr(rate),
	})
	require.NoError(t, err)
	return pkg
}

func (e *testEnv) table(t *testing.T, name string) *entity.Table {
	t.Helper()
	table, err := e.tables.CreateTable(context.Background(), &TableInput{
		Name:       name,
		HourlyRate: dec("40000"),
	})
	require.NoError(t, err)
	return table
}

func (e *testEnv) item(t *testing.T, name, price string, stock int) *entity.FnbItem {
	t.Helper()
	ctx := context.Background()
	category, err := e.menu.CreateCategory(ctx, &CategoryInput{Name: "Category " + name})
	require.NoError(t, err)
	item, err := e.menu.CreateItem(ctx, &ItemInput{
		CategoryID:    category.ID,
		Name:          name,
		Price:         dec(price),
		Cost:          dec("0"),
		StockQuantity: stock,
		MinStock:      1,
	})
	require.NoError(t, err)
	return item
}

func (e *testEnv) start(t *testing.T, tableID, packageID uuid.UUID) *entity.TableSession {
	t.Helper()
	session, err := e.sessions.StartSession(context.Background(), &StartSessionInput{
		TableID:          tableID,
		CustomerName:     "Budi",
		Mode:             enum.SessionModeOpen,
		PricingPackageID: packageID,
	})
	require.NoError(t, err)
	return session
}

func (e *testEnv) draft(t *testing.T, itemID uuid.UUID, qty int) *entity.FnbOrder {
	t.Helper()
	order, err := e.orders.CreateOrder(context.Background(), &CreateOrderInput{
		Items:        []OrderLineInput{{ItemID: itemID, Quantity: qty}},
		CustomerName: strPtr("Budi"),
	})
	require.NoError(t, err)
	return order
}

func (e *testEnv) reloadTable(t *testing.T, id uuid.UUID) *entity.Table {
	t.Helper()
	var table entity.Table
	require.NoError(t, e.db.First(&table, "id = ?", id).Error)
	return &table
}

func (e *testEnv) reloadItem(t *testing.T, id uuid.UUID) *entity.FnbItem {
	t.Helper()
	var item entity.FnbItem
	require.NoError(t, e.db.First(&item, "id = ?", id).Error)
	return &item
}

func (e *testEnv) reloadOrder(t *testing.T, id uuid.UUID) *entity.FnbOrder {
	t.Helper()
	var order entity.FnbOrder
	require.NoError(t, e.db.First(&order, "id = ?", id).Error)
	return &order
}

func (e *testEnv) enableTax(t *testing.T, percentage string, tables, fnb bool) {
	t.Helper()
	_, err := e.settings.UpdateTaxSettings(context.Background(), &billing.TaxSettings{
		Enabled:       true,
		Percentage:    dec(percentage),
		Name:          "PPN",
		ApplyToTables: tables,
		ApplyToFnb:    fnb,
	})
	require.NoError(t, err)
}
