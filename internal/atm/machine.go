// internal/atm/machine.go

// Package atm 組合讀卡 (card.Session) 與出鈔 (cash.Inventory)，實作提款四步驟：
// 1) 前置檢查 → 2) 主機凍結 → 3) 出鈔 → 4) 主機結算。
// 以單一互斥鎖 (sync.Mutex) 序列化所有公開操作，一台機器同時只服務一張卡。
package atm

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atm/internal/card"
	"atm/internal/cash"
	"atm/internal/domain"
	"atm/internal/host"
)

// Identity is the read-only machine identification.
type Identity struct {
	Manufacturer string `json:"manufacturer"`
	SerialNumber string `json:"serial_number"`
}

// Machine is one ATM.
type Machine struct {
	mu      sync.Mutex
	id      Identity
	session *card.Session
	cash    *cash.Inventory
	log     *zap.Logger
}

// New 以主機服務與機器識別建立 ATM；出鈔模組初始為空，需由操作員補鈔。
// log 為 nil 時使用 zap.NewNop()。
func New(h host.Authority, id Identity, log *zap.Logger) *Machine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine{
		id:      id,
		session: card.NewSession(h),
		cash:    cash.NewInventory(),
		log:     log,
	}
}

// Manufacturer 回傳製造商名稱。
func (m *Machine) Manufacturer() string { return m.id.Manufacturer }

// SerialNumber 回傳機器序號。
func (m *Machine) SerialNumber() string { return m.id.SerialNumber }

// Identity 回傳製造商與序號。
func (m *Machine) Identity() Identity { return m.id }

// InsertCard 插入卡片。實機上由讀卡機讀出卡號後呼叫。
func (m *Machine) InsertCard(cardNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.session.Insert(cardNumber); err != nil {
		return err
	}
	m.log.Info("card inserted",
		zap.String("card", domain.MaskCardNumber(cardNumber)),
		zap.Bool("operator", m.session.IsOperator()),
	)
	return nil
}

// ReturnCard 退卡。
func (m *Machine) ReturnCard() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Eject()
}

// Balance 回傳已插入卡片的可用餘額。
func (m *Machine) Balance() (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Balance()
}

// ChargedFees 回傳已插入卡片的手續費歷史。
func (m *Machine) ChargedFees() ([]domain.Fee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.FeeHistory()
}

// LoadMoney 補鈔：僅限操作員卡，整批替換出鈔模組內的鈔票。
func (m *Machine) LoadMoney(money domain.Money) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.session.IsOperator() {
		return domain.ErrNotAuthorizedOperator
	}
	if err := m.cash.Reload(money); err != nil {
		return err
	}
	m.log.Info("cash loaded", zap.Int64("total", money.Amount))
	return nil
}

// Cash 回傳出鈔模組內容；僅限操作員卡。
func (m *Machine) Cash() (domain.Money, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.session.IsOperator() {
		return domain.Money{}, domain.ErrNotAuthorizedOperator
	}
	return m.cash.Snapshot(), nil
}

// WithdrawMoney 提款，回傳實際吐出的鈔票組合。
//
// 凍結成功後若出鈔或結算失敗，主機端的凍結不會被釋放；該交易 ID 會以 error 等級記錄，供對帳使用。
// 結算失敗時鈔票已離開機器，因此仍回傳出鈔結果與錯誤。
func (m *Machine) WithdrawMoney(amount int64) (domain.Money, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validate(amount); err != nil {
		return domain.Money{}, err
	}

	opID, err := m.session.Hold(amount)
	if err != nil {
		return domain.Money{}, err
	}

	money, err := m.cash.Dispense(amount)
	if err != nil {
		m.log.Error("dispense failed with hold outstanding",
			zap.String("card", domain.MaskCardNumber(m.session.CardNumber())),
			zap.String("operation_id", opID.String()),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return domain.Money{}, fmt.Errorf("dispense %d: %w", amount, err)
	}

	if err := m.session.Settle(opID); err != nil {
		m.log.Error("settlement failed after dispense",
			zap.String("card", domain.MaskCardNumber(m.session.CardNumber())),
			zap.String("operation_id", opID.String()),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return money, fmt.Errorf("settle operation %s: %w", opID, err)
	}

	m.log.Info("cash withdrawn",
		zap.String("card", domain.MaskCardNumber(m.session.CardNumber())),
		zap.String("operation_id", opID.String()),
		zap.Any("notes", money.Notes),
	)
	return money, nil
}

// validate 依固定順序檢查：金額 → 機器現金 → 面額倍數 → 帳戶餘額 → 可否湊出。
// 順序影響回傳的錯誤種類，不可調換。
func (m *Machine) validate(amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	if amount > m.cash.Total() {
		return domain.ErrAmountTooBig
	}
	minNote, err := m.cash.MinDenomination()
	if err != nil {
		return err
	}
	if amount%int64(minNote) != 0 {
		return &domain.AmountNotMultipleError{Denomination: minNote}
	}
	balance, err := m.session.Balance()
	if err != nil {
		return err
	}
	if decimal.NewFromInt(amount).GreaterThan(balance) {
		return domain.ErrInsufficientFunds
	}
	if _, remaining := m.cash.Plan(amount); remaining != 0 {
		return domain.ErrCannotDispense
	}
	return nil
}
