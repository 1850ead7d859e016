package repository

import (
	"context"

	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"gorm.io/gorm"
)

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a Transactor backed by gorm transactions
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}
