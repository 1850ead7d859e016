package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type memoryIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: map[string]entity.IdempotencyKey{}}
}

func scopeOf(key string, userID uuid.UUID, endpoint string) string {
	return key + "|" + userID.String() + "|" + endpoint
}

func (r *memoryIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID, endpoint string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[scopeOf(key, userID, endpoint)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memoryIdempotencyRepo) Save(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[scopeOf(ikey.Key, ikey.UserID, ikey.Endpoint)] = *ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for scope, ikey := range r.keys {
		if ikey.IsExpired(now) {
			delete(r.keys, scope)
			deleted++
		}
	}
	return deleted, nil
}

func idempotentRouter(repo *memoryIdempotencyRepo, userID uuid.UUID, calls *int) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	router.Use(Idempotency(IdempotencyConfig{Repo: repo, TTL: time.Hour}))
	router.POST("/sessions/:id/end", func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusOK, gin.H{"session": c.Param("id"), "call": *calls})
	})
	return router
}

func postWithKey(router *gin.Engine, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set(IdempotencyKeyHeader, key)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSamePath(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := idempotentRouter(repo, uuid.New(), &calls)

	first := postWithKey(router, "/sessions/a/end", "retry-1")
	second := postWithKey(router, "/sessions/a/end", "retry-1")

	assert.Equal(t, 1, calls)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestIdempotency_KeyIsScopedToPath(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := idempotentRouter(repo, uuid.New(), &calls)

	postWithKey(router, "/sessions/a/end", "shared")
	other := postWithKey(router, "/sessions/b/end", "shared")

	assert.Equal(t, 2, calls)
	assert.Empty(t, other.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, `{"session":"b","call":2}`, other.Body.String())
}

func TestIdempotency_ReplacesExpiredKey(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	userID := uuid.New()
	calls := 0
	router := idempotentRouter(repo, userID, &calls)

	endpoint := http.MethodPost + " /sessions/a/end"
	_ = repo.Save(context.Background(), &entity.IdempotencyKey{
		Key:          "stale",
		UserID:       userID,
		Endpoint:     endpoint,
		ResponseCode: http.StatusOK,
		ResponseBody: `{"old":true}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	})

	fresh := postWithKey(router, "/sessions/a/end", "stale")
	assert.Equal(t, 1, calls)
	assert.Empty(t, fresh.Header().Get("X-Idempotency-Replayed"))

	stored, _ := repo.GetByKey(context.Background(), "stale", userID, endpoint)
	if assert.NotNil(t, stored) {
		assert.False(t, stored.IsExpired(time.Now()))
		assert.JSONEq(t, fresh.Body.String(), stored.ResponseBody)
	}

	replay := postWithKey(router, "/sessions/a/end", "stale")
	assert.Equal(t, 1, calls)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
}
