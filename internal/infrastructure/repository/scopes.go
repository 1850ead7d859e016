package repository

import (
	"context"
	"strings"

	"github.com/chalkboard-id/chalkboard-api/pkg/pagination"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key carrying the transaction opened by the Transactor
const txKey ctxKey = "gorm_tx"

// dbFrom returns the transaction stored in ctx, or db bound to ctx when the
// call is not part of a transaction
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// InTransaction reports whether ctx carries an open transaction
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey).(*gorm.DB)
	return ok
}

type statusEnum[S any] interface {
	~string
	CanTransitionTo(next S) bool
	Predecessors() []S
}

// transitionFrom returns the statuses a conditional update into next may
// match: the given ones the status table allows, or every predecessor of
// next when none are given
func transitionFrom[S statusEnum[S]](next S, from ...S) []S {
	if len(from) == 0 {
		return next.Predecessors()
	}
	allowed := make([]S, 0, len(from))
	for _, s := range from {
		if s.CanTransitionTo(next) {
			allowed = append(allowed, s)
		}
	}
	return allowed
}

// createKeepingInactive inserts value and writes is_active=false back when
// the caller asked for it. GORM skips a false bool on insert and the column
// default of true wins otherwise.
func createKeepingInactive(db *gorm.DB, value any, isActive *bool, omit ...string) error {
	want := *isActive
	query := db
	if len(omit) > 0 {
		query = db.Omit(omit...)
	}
	if err := query.Create(value).Error; err != nil {
		return err
	}
	if want {
		return nil
	}
	*isActive = false
	return db.Model(value).Update("is_active", false).Error
}

// SearchScope matches term case-insensitively against any of the columns.
// LOWER/LIKE keeps the query portable between PostgreSQL and SQLite.
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		conditions := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, column := range columns {
			conditions[i] = "LOWER(" + column + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(conditions, " OR "), args...)
	}
}

// Paginate applies offset and limit from params, falling back to defaults
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = pagination.DefaultPagination()
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}
