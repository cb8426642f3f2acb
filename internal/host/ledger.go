// internal/host/ledger.go

// Package host 模擬遠端主機（發卡行處理端）：帳戶餘額與凍結金額、交易歷史與手續費。
// ATM 只透過 Authority 介面與主機溝通，本套件提供其 in-memory 實作。
package host

import (
	"github.com/shopspring/decimal"

	"atm/internal/domain"
)

// Ledger is the balance bookkeeping for one account.
// Blocked never exceeds Balance.
type Ledger struct {
	Balance decimal.Decimal `json:"balance"`
	Blocked decimal.Decimal `json:"blocked"`
}

// NewLedger 以初始餘額與凍結金額建立帳戶。
func NewLedger(balance, blocked decimal.Decimal) *Ledger {
	return &Ledger{Balance: balance, Blocked: blocked}
}

// Effective 回傳可用餘額 = Balance - Blocked。
func (l *Ledger) Effective() decimal.Decimal {
	return l.Balance.Sub(l.Blocked)
}

// Block 凍結款項。呼叫端需先確認 Effective() >= amount。
func (l *Ledger) Block(amount decimal.Decimal) {
	l.Blocked = l.Blocked.Add(amount)
}

// Settle 將凍結款項轉為實際扣款；amount 需介於 0 與 Blocked 之間。
func (l *Ledger) Settle(amount decimal.Decimal) error {
	if amount.IsNegative() || l.Blocked.LessThan(amount) {
		return domain.ErrInvalidAmount
	}
	l.Balance = l.Balance.Sub(amount)
	l.Blocked = l.Blocked.Sub(amount)
	return nil
}
