package service

import (
	"bytes"
	"slices"
	"strings"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// timeNow is the clock used by every service; tests pin it
var timeNow = time.Now

// trimmedOrNil returns nil for missing or blank strings
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// sumOrders returns the summed totals and tax of orders
func sumOrders(orders []entity.FnbOrder) (total, tax decimal.Decimal) {
	total, tax = decimal.Zero, decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
		tax = tax.Add(o.Tax)
	}
	return total, tax
}

// orderIDs returns the ids of orders
func orderIDs(orders []entity.FnbOrder) []uuid.UUID {
	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}

// sortedIDs returns the keys of m in byte order so row locks are always
// taken in the same sequence
func sortedIDs(m map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}
