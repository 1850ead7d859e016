package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/config"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/infrastructure/database"
	"github.com/chalkboard-id/chalkboard-api/internal/infrastructure/repository"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/handler"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/middleware"
	"github.com/chalkboard-id/chalkboard-api/pkg/logger"
	"github.com/chalkboard-id/chalkboard-api/pkg/printer"
	"github.com/chalkboard-id/chalkboard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testServer struct {
	t            *testing.T
	router       *gin.Engine
	db           *gorm.DB
	adminToken   string
	cashierToken string
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, rateLimit config.RateLimitConfig) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(database.Models()...))

	cfg := &config.Config{
		App:         config.AppConfig{Name: "chalkboard-api"},
		RateLimit:   rateLimit,
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
	}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	transactor := repository.NewTransactor(db)
	tableRepo := repository.NewTableRepository(db)
	packageRepo := repository.NewPricingPackageRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	itemRepo := repository.NewFnbItemRepository(db)
	orderRepo := repository.NewFnbOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	taxRepo := repository.NewTaxSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	pricingService := service.NewPricingService(transactor, packageRepo, tableRepo)
	billingService := service.NewBillingService(transactor, sessionRepo, tableRepo, orderRepo, paymentRepo, staffRepo, taxRepo, pricingService)
	noPrinter, err := printer.New(printer.Config{})
	require.NoError(t, err)

	handlers := &Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(repository.NewUserRepository(db), jwtManager)),
		Session:  handler.NewSessionHandler(service.NewSessionService(transactor, sessionRepo, tableRepo, orderRepo, staffRepo, pricingService), billingService),
		FnbOrder: handler.NewFnbOrderHandler(service.NewFnbOrderService(transactor, orderRepo, itemRepo, sessionRepo, paymentRepo, staffRepo, taxRepo)),
		Payment:  handler.NewPaymentHandler(billingService, service.NewReceiptService(billingService, noPrinter, "Hall", 32)),
		Table:    handler.NewTableHandler(service.NewTableService(tableRepo, packageRepo, sessionRepo)),
		Pricing:  handler.NewPricingHandler(pricingService),
		Staff:    handler.NewStaffHandler(service.NewStaffService(staffRepo)),
		Menu:     handler.NewMenuHandler(service.NewMenuService(repository.NewFnbCategoryRepository(db), itemRepo)),
		Settings: handler.NewSettingsHandler(service.NewSettingsService(repository.NewSettingRepository(db), taxRepo)),
	}

	limiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfigFrom(rateLimit))
	t.Cleanup(limiter.Stop)

	s := &testServer{
		t: t,
		router: Setup(handlers, &Deps{
			JWTManager:      jwtManager,
			Cfg:             cfg,
			IdempotencyRepo: idempotencyRepo,
			RateLimiter:     limiter,
		}),
		db: db,
	}

	admin := s.user("admin@chalkboard.id", enum.UserRoleAdmin)
	cashier := s.user("kasir@chalkboard.id", enum.UserRoleCashier)
	s.adminToken, err = jwtManager.GenerateAccessToken(admin.ID, admin.Email, string(admin.Role), nil)
	require.NoError(t, err)
	s.cashierToken, err = jwtManager.GenerateAccessToken(cashier.ID, cashier.Email, string(cashier.Role), nil)
	require.NoError(t, err)
	return s
}

func defaultLimits() config.RateLimitConfig {
	return config.RateLimitConfig{Requests: 1000, Duration: 1}
}

func (s *testServer) user(email string, role enum.UserRole) *entity.User {
	hash, err := utils.HashPassword("rahasia123")
	require.NoError(s.t, err)
	u := &entity.User{Email: email, Password: hash, Name: string(role), Role: role, IsActive: true}
	require.NoError(s.t, s.db.Omit("Staff").Create(u).Error)
	return u
}

func (s *testServer) do(method, path, token string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// id extracts data.id from a response
func (s *testServer) id(env envelope) string {
	s.t.Helper()
	var data struct {
		ID string `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(s.t, data.ID)
	return data.ID
}

// catalog creates a package, a table and an item with stock 10
func (s *testServer) catalog() (packageID, tableID, itemID string) {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, "/api/v1/pricing-packages", s.adminToken, gin.H{
		"name": "Regular", "category": "hourly", "hourly_rate": "50000",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, env.Message)
	packageID = s.id(env)

	rec, env = s.do(http.MethodPost, "/api/v1/tables", s.adminToken, gin.H{
		"name": "Meja 1", "hourly_rate": "40000",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, env.Message)
	tableID = s.id(env)

	rec, env = s.do(http.MethodPost, "/api/v1/fnb-categories", s.adminToken, gin.H{"name": "Minuman"})
	require.Equal(s.t, http.StatusCreated, rec.Code, env.Message)
	categoryID := s.id(env)

	rec, env = s.do(http.MethodPost, "/api/v1/fnb-items", s.adminToken, gin.H{
		"category_id": categoryID, "name": "Es Teh", "price": "10000", "stock_quantity": 10, "min_stock": 2,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, env.Message)
	itemID = s.id(env)
	return packageID, tableID, itemID
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, defaultLimits())

	rec, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chalkboard_http_requests_total")
}

func TestAuthGate(t *testing.T) {
	s := newTestServer(t, defaultLimits())

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrongScheme", "Basic abc"},
		{"garbage", "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/active", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, "Unauthorized", env.Message)
			assert.Equal(t, "unauthorized", env.Kind)
		})
	}
}

func TestLoginAndProfile(t *testing.T) {
	s := newTestServer(t, defaultLimits())

	rec, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "kasir@chalkboard.id", "password": "salah-sekali"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", env.Message)

	rec, env = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "kasir@chalkboard.id", "password": "rahasia123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)

	rec, env = s.do(http.MethodGet, "/api/v1/profile", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "kasir@chalkboard.id")

	rec, _ = s.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refresh_token": tokens.RefreshToken})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOnlyWrites(t *testing.T) {
	s := newTestServer(t, defaultLimits())

	rec, env := s.do(http.MethodPost, "/api/v1/tables", s.cashierToken, gin.H{"name": "Meja 9", "hourly_rate": "40000"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", env.Kind)

	rec, _ = s.do(http.MethodGet, "/api/v1/tables", s.cashierToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPut, "/api/v1/settings/tax", s.cashierToken, gin.H{"percentage": "10", "name": "PPN"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t, defaultLimits())
	packageID, tableID, itemID := s.catalog()

	rec, env := s.do(http.MethodPost, "/api/v1/sessions", s.cashierToken, gin.H{
		"table_id": tableID, "mode": "open", "pricing_package_id": packageID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "customer_name is required")
	assert.Equal(t, "invalid_argument", env.Kind)

	rec, env = s.do(http.MethodPost, "/api/v1/sessions", s.cashierToken, gin.H{
		"table_id": tableID, "customer_name": "Budi", "mode": "open", "pricing_package_id": uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, env.Message)

	start := gin.H{"table_id": tableID, "customer_name": "Budi", "mode": "open", "pricing_package_id": packageID}
	rec, env = s.do(http.MethodPost, "/api/v1/sessions", s.cashierToken, start)
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	sessionID := s.id(env)

	rec, env = s.do(http.MethodPost, "/api/v1/sessions", s.cashierToken, start)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "conflict", env.Kind)

	rec, env = s.do(http.MethodPost, "/api/v1/fnb-orders", s.cashierToken, gin.H{
		"items": []gin.H{{"item_id": itemID, "quantity": 2}}, "customer_name": "Budi",
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	orderID := s.id(env)

	rec, env = s.do(http.MethodPost, "/api/v1/fnb-orders/"+orderID+"/assign-table", s.cashierToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "table_id is required", env.Message)

	rec, env = s.do(http.MethodPost, "/api/v1/fnb-orders/"+orderID+"/assign-table", s.cashierToken, gin.H{"table_id": tableID})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	assert.Contains(t, string(env.Data), `"status":"pending"`)

	rec, env = s.do(http.MethodPost, "/api/v1/sessions/"+sessionID+"/end", s.cashierToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	var ended struct {
		Payment struct {
			ID        string `json:"id"`
			Status    string `json:"status"`
			FnbAmount decimal.Decimal `json:"fnb_amount"`
		} `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ended))
	assert.Equal(t, "pending", ended.Payment.Status)
	assert.True(t, decimal.NewFromInt(20000).Equal(ended.Payment.FnbAmount), ended.Payment.FnbAmount.String())

	rec, _ = s.do(http.MethodPost, "/api/v1/sessions/"+sessionID+"/end", s.cashierToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = s.do(http.MethodPut, "/api/v1/payments/"+ended.Payment.ID+"/status", s.cashierToken, gin.H{"status": "refunded"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, env.Message)

	rec, env = s.do(http.MethodPut, "/api/v1/payments/"+ended.Payment.ID+"/status", s.cashierToken, gin.H{
		"status": "success", "payment_methods": []gin.H{{"type": "cash", "amount": "60000"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)

	rec, env = s.do(http.MethodGet, "/api/v1/payments/"+ended.Payment.ID, s.cashierToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"status":"success"`)
	assert.Contains(t, string(env.Data), `"status":"paid"`)

	rec, env = s.do(http.MethodPost, "/api/v1/payments/"+ended.Payment.ID+"/print", s.cashierToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no printer configured")
	assert.Equal(t, "No receipt printer is configured", env.Message)

	rec, _ = s.do(http.MethodGet, "/api/v1/sessions/not-a-uuid", s.cashierToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdempotencyKeyReplaysCheckout(t *testing.T) {
	s := newTestServer(t, defaultLimits())
	_, _, itemID := s.catalog()

	rec, env := s.do(http.MethodPost, "/api/v1/fnb-orders", s.cashierToken, gin.H{
		"items": []gin.H{{"item_id": itemID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	orderID := s.id(env)

	body := gin.H{"order_ids": []string{orderID}, "customer_name": "Sari"}
	first, firstEnv := s.do(http.MethodPost, "/api/v1/fnb-orders/checkout", s.cashierToken, body, "Idempotency-Key", "checkout-1")
	require.Equal(t, http.StatusCreated, first.Code, firstEnv.Message)

	second, secondEnv := s.do(http.MethodPost, "/api/v1/fnb-orders/checkout", s.cashierToken, body, "Idempotency-Key", "checkout-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, s.id(firstEnv), s.id(secondEnv))

	var payments int64
	require.NoError(t, s.db.Model(&entity.Payment{}).Count(&payments).Error)
	assert.Equal(t, int64(1), payments)

	third, _ := s.do(http.MethodPost, "/api/v1/fnb-orders/checkout", s.cashierToken, body)
	assert.Equal(t, http.StatusNotFound, third.Code, "order is no longer a draft")
}

func TestSettingsEndpoints(t *testing.T) {
	s := newTestServer(t, defaultLimits())

	rec, env := s.do(http.MethodGet, "/api/v1/settings/tax", s.cashierToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"enabled":false`)

	rec, env = s.do(http.MethodPut, "/api/v1/settings/tax", s.adminToken, gin.H{"enabled": true, "percentage": "150", "name": "PPN"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", env.Message)

	rec, env = s.do(http.MethodPut, "/api/v1/settings/tax", s.adminToken, gin.H{
		"enabled": true, "percentage": "11", "name": "PPN", "apply_to_tables": true, "apply_to_fnb": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	assert.Contains(t, string(env.Data), `"name":"PPN"`)

	rec, _ = s.do(http.MethodPut, "/api/v1/settings/tax_settings", s.adminToken, gin.H{"value": gin.H{"enabled": false}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPut, "/api/v1/settings/hall_name", s.adminToken, gin.H{"value": "Chalkboard Kemang"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/v1/settings/hall_name", s.cashierToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Chalkboard Kemang")

	rec, _ = s.do(http.MethodGet, "/api/v1/settings/missing", s.cashierToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimitPerUser(t *testing.T) {
	s := newTestServer(t, config.RateLimitConfig{Requests: 2, Duration: 60})

	for i := 0; i < 2; i++ {
		rec, _ := s.do(http.MethodGet, "/api/v1/tables", s.cashierToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := s.do(http.MethodGet, "/api/v1/tables", s.cashierToken, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "too_many_requests", env.Kind)

	rec, _ = s.do(http.MethodGet, "/api/v1/tables", s.adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
