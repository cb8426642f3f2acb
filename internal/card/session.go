// Package card 代表讀卡機中的一張卡片：所有對主機的請求都必須在「卡片已插入」時才能進行。
package card

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atm/internal/domain"
	"atm/internal/host"
)

// Session tracks the single card currently held by the reader.
// It is not safe for concurrent use; the machine serializes access.
type Session struct {
	host   host.Authority
	info   domain.CardInfo
	active bool
}

// NewSession 建立空的讀卡工作階段。
func NewSession(h host.Authority) *Session {
	return &Session{host: h}
}

// Insert 插入卡片：向主機驗證卡號並保存卡片資訊。
func (s *Session) Insert(cardNumber string) error {
	if s.active {
		return domain.ErrCardAlreadyInserted
	}
	info, err := s.host.LookupAccount(cardNumber)
	if err != nil {
		return err
	}
	s.info = info
	s.active = true
	return nil
}

// Eject 退卡。
func (s *Session) Eject() error {
	if !s.active {
		return domain.ErrNoCardInserted
	}
	s.info = domain.CardInfo{}
	s.active = false
	return nil
}

// Active reports whether a card is inserted.
func (s *Session) Active() bool { return s.active }

// CardNumber returns the inserted card number, or "" when none.
func (s *Session) CardNumber() string { return s.info.CardNumber }

// IsOperator is true only while an operator card is inserted.
func (s *Session) IsOperator() bool {
	return s.active && s.info.IsOperator
}

// Balance 查詢目前卡片的可用餘額。
func (s *Session) Balance() (decimal.Decimal, error) {
	if !s.active {
		return decimal.Zero, domain.ErrNoCardInserted
	}
	return s.host.CurrentBalance(s.info.CardNumber)
}

// Hold 向主機為目前卡片凍結 amount 與手續費，回傳交易編號。
func (s *Session) Hold(amount int64) (uuid.UUID, error) {
	if !s.active {
		return uuid.Nil, domain.ErrNoCardInserted
	}
	return s.host.PlaceHold(s.info.CardNumber, amount)
}

// Settle 完成目前卡片的一筆凍結交易。
func (s *Session) Settle(operationID uuid.UUID) error {
	if !s.active {
		return domain.ErrNoCardInserted
	}
	return s.host.SettleHold(s.info.CardNumber, operationID)
}

// FeeHistory 回傳目前卡片已完成交易的手續費，依完成順序排列。
func (s *Session) FeeHistory() ([]domain.Fee, error) {
	if !s.active {
		return nil, domain.ErrNoCardInserted
	}
	return s.host.FeeHistory(s.info.CardNumber)
}
