// internal/host/journal.go

package host

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atm/internal/domain"
)

// Operation is one withdrawal as seen by the host: created pending by a hold,
// completed once by settlement.
type Operation struct {
	ID         uuid.UUID       `json:"id"`
	CardNumber string          `json:"card_number"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	// Date 在完成時被覆寫為完成時間，不保留凍結時間。
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// Total 回傳本筆交易需扣除的金額（提款 + 手續費）。
func (o *Operation) Total() decimal.Decimal {
	return o.Amount.Add(o.Fee)
}

// cardHistory 為單一卡號的交易歷史：ops 以 ID 索引，completed 依完成先後排列。
type cardHistory struct {
	ops       map[uuid.UUID]*Operation
	completed []uuid.UUID
}

// Journal 為只增不減的交易歷史，以 (卡號, 交易 ID) 為鍵。
// 本身不加鎖，由 Service 的互斥鎖保護。
type Journal struct {
	history map[string]*cardHistory
	now     func() time.Time
}

// NewJournal 建立空的交易歷史。now 為 nil 時使用 UTC 現在時間。
func NewJournal(now func() time.Time) *Journal {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Journal{history: make(map[string]*cardHistory), now: now}
}

// Add 新增一筆未完成交易並回傳其 ID。
func (j *Journal) Add(cardNumber string, amount, fee decimal.Decimal) uuid.UUID {
	h, ok := j.history[cardNumber]
	if !ok {
		h = &cardHistory{ops: make(map[uuid.UUID]*Operation)}
		j.history[cardNumber] = h
	}
	op := &Operation{
		ID:         uuid.New(),
		CardNumber: cardNumber,
		Amount:     amount,
		Fee:        fee,
		Date:       j.now(),
	}
	h.ops[op.ID] = op
	return op.ID
}

// Get 回傳交易的值拷貝；不存在回傳 ErrOperationNotFound。
func (j *Journal) Get(cardNumber string, id uuid.UUID) (Operation, error) {
	h, ok := j.history[cardNumber]
	if !ok {
		return Operation{}, domain.ErrOperationNotFound
	}
	op, ok := h.ops[id]
	if !ok {
		return Operation{}, domain.ErrOperationNotFound
	}
	return *op, nil
}

// Complete 將交易標記為完成；已完成者不做任何事。
func (j *Journal) Complete(cardNumber string, id uuid.UUID) error {
	h, ok := j.history[cardNumber]
	if !ok {
		return domain.ErrOperationNotFound
	}
	op, ok := h.ops[id]
	if !ok {
		return domain.ErrOperationNotFound
	}
	if op.Completed {
		return nil
	}
	op.Date = j.now()
	op.Completed = true
	h.completed = append(h.completed, id)
	return nil
}

// Fees 依完成順序回傳已完成交易的手續費。
// 卡號沒有任何歷史時回傳 nil；有歷史但無已完成交易時回傳空切片。
func (j *Journal) Fees(cardNumber string) []domain.Fee {
	h, ok := j.history[cardNumber]
	if !ok {
		return nil
	}
	out := make([]domain.Fee, 0, len(h.completed))
	for _, id := range h.completed {
		op := h.ops[id]
		out = append(out, domain.Fee{CardNumber: op.CardNumber, Amount: op.Fee, Date: op.Date})
	}
	return out
}
