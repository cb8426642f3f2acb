// internal/host/service.go

package host

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atm/internal/domain"
)

// Authority is the host processor contract the ATM is written against.
type Authority interface {
	LookupAccount(cardNumber string) (domain.CardInfo, error)
	CurrentBalance(cardNumber string) (decimal.Decimal, error)
	PlaceHold(cardNumber string, amount int64) (uuid.UUID, error)
	SettleHold(cardNumber string, operationID uuid.UUID) error
	FeeHistory(cardNumber string) ([]domain.Fee, error)
}

var hundred = decimal.NewFromInt(100)

// Service 為 Authority 的 in-memory 實作，持有帳戶 (Repository) 與交易歷史 (Journal)。
// mu 序列化所有讀寫，確保凍結與結算之間 Blocked <= Balance 永遠成立。
type Service struct {
	mu         sync.Mutex
	accounts   Repository
	journal    *Journal
	feePercent decimal.Decimal
	operator   string
	log        *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock 替換交易時間來源（測試用）。
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.journal = NewJournal(now) }
}

// WithLogger 設定 logger；預設為 zap.NewNop()。
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService 建立主機服務。operatorCard 為唯一的操作員卡號；feePercent 為提款手續費百分比。
func NewService(accounts Repository, operatorCard string, feePercent decimal.Decimal, opts ...Option) *Service {
	s := &Service{
		accounts:   accounts,
		journal:    NewJournal(nil),
		feePercent: feePercent,
		operator:   operatorCard,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Authority = (*Service)(nil)

// LookupAccount 驗證卡號並回傳卡片資訊；操作員卡不需查詢帳戶。
func (s *Service) LookupAccount(cardNumber string) (domain.CardInfo, error) {
	if cardNumber == "" {
		return domain.CardInfo{}, domain.ErrInvalidAccountReference
	}
	if s.isOperator(cardNumber) {
		return domain.CardInfo{CardNumber: cardNumber, IsOperator: true}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.accounts.Find(cardNumber); err != nil {
		return domain.CardInfo{}, err
	}
	return domain.CardInfo{CardNumber: cardNumber}, nil
}

// CurrentBalance 回傳可用餘額；操作員卡恆為 0。
func (s *Service) CurrentBalance(cardNumber string) (decimal.Decimal, error) {
	if s.isOperator(cardNumber) {
		return decimal.Zero, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.accounts.Find(cardNumber)
	if err != nil {
		return decimal.Zero, err
	}
	return l.Effective(), nil
}

// PlaceHold 凍結提款金額加手續費，並新增一筆未完成交易。
func (s *Service) PlaceHold(cardNumber string, amount int64) (uuid.UUID, error) {
	if s.isOperator(cardNumber) {
		return uuid.Nil, domain.ErrOperatorNotPermitted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.accounts.Find(cardNumber)
	if err != nil {
		return uuid.Nil, err
	}

	amt := decimal.NewFromInt(amount)
	fee := s.Fee(amount)
	total := amt.Add(fee)
	if l.Effective().LessThan(total) {
		return uuid.Nil, domain.ErrInsufficientFunds
	}

	l.Block(total)
	id := s.journal.Add(cardNumber, amt, fee)

	s.log.Info("hold placed",
		zap.String("card", domain.MaskCardNumber(cardNumber)),
		zap.String("operation_id", id.String()),
		zap.Int64("amount", amount),
		zap.String("fee", fee.StringFixed(2)),
	)
	return id, nil
}

// SettleHold 將凍結款項轉為扣款並完成交易。對已完成的交易重複呼叫不會再次扣款。
func (s *Service) SettleHold(cardNumber string, operationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.accounts.Find(cardNumber)
	if err != nil {
		return err
	}
	op, err := s.journal.Get(cardNumber, operationID)
	if err != nil {
		return err
	}
	if op.Completed {
		return nil
	}
	if err := l.Settle(op.Total()); err != nil {
		return fmt.Errorf("settle operation %s: %w", operationID, err)
	}
	if err := s.journal.Complete(cardNumber, operationID); err != nil {
		return err
	}

	s.log.Info("hold settled",
		zap.String("card", domain.MaskCardNumber(cardNumber)),
		zap.String("operation_id", operationID.String()),
		zap.String("total", op.Total().StringFixed(2)),
	)
	return nil
}

// FeeHistory 回傳已完成交易的手續費紀錄（依完成順序）。
func (s *Service) FeeHistory(cardNumber string) ([]domain.Fee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.Fees(cardNumber), nil
}

// Fee 計算手續費：round(amount × feePercent / 100, 2)，採銀行家捨入（half to even）。
func (s *Service) Fee(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Mul(s.feePercent).Div(hundred).RoundBank(2)
}

func (s *Service) isOperator(cardNumber string) bool {
	return s.operator != "" && cardNumber == s.operator
}
