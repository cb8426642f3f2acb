package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardInfo is the identity the host returns for an inserted card.
type CardInfo struct {
	CardNumber string `json:"card_number"`
	IsOperator bool   `json:"is_operator"`
}

// Fee is one charged withdrawal fee.
type Fee struct {
	CardNumber string          `json:"card_number"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// MaskCardNumber keeps only the last four digits, for logs.
func MaskCardNumber(n string) string {
	if len(n) <= 4 {
		return n
	}
	masked := make([]byte, len(n))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(n)-4:], n[len(n)-4:])
	return string(masked)
}
