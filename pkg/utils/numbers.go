package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber returns a unique F&B order number, e.g. FNB-20260314-1A2B3C4D
func GenerateOrderNumber(now time.Time) string {
	return generateNumber("FNB", now)
}

// GenerateTransactionNumber returns a unique payment transaction number
func GenerateTransactionNumber(now time.Time) string {
	return generateNumber("TRX", now)
}

func generateNumber(prefix string, now time.Time) string {
	return prefix + "-" + now.Format("20060102") + "-" + strings.ToUpper(uuid.New().String()[:8])
}
