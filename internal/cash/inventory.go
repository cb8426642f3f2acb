// internal/cash/inventory.go

// Package cash 管理出鈔模組內的實體鈔票：補鈔（整批替換）、最小面額查詢與貪婪出鈔。
// 以單一互斥鎖 (sync.Mutex) 序列化 Reload / Dispense，確保 Amount 永遠等於 Σ(面額 × 張數)。
package cash

import (
	"sync"

	"atm/internal/domain"
)

// Inventory holds the banknotes physically available in the dispenser.
type Inventory struct {
	mu   sync.Mutex
	cash domain.Money
}

// NewInventory 建立空的出鈔模組（尚未補鈔）。
func NewInventory() *Inventory {
	return &Inventory{cash: domain.Money{Notes: domain.Notes{}}}
}

// Reload 以操作員放入的鈔票整批替換現有庫存。
// 申報總額與 Σ(面額 × 張數) 不符、加總溢位、面額不支援或張數為負時回傳錯誤，庫存維持不變。
func (i *Inventory) Reload(m domain.Money) error {
	for d, c := range m.Notes {
		if !d.Valid() {
			return domain.ErrUnknownDenomination
		}
		if c < 0 {
			return domain.ErrInvalidDeclaredAmount
		}
	}
	sum, ok := m.Notes.CheckedSum()
	if !ok || sum != m.Amount {
		return domain.ErrInvalidDeclaredAmount
	}

	next := domain.Money{Amount: m.Amount, Notes: m.Notes.Clone()}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.cash = next
	return nil
}

// MinDenomination 回傳張數大於 0 的最小面額；全部為 0 時回傳 ErrEmptyInventory。
func (i *Inventory) MinDenomination() (domain.Denomination, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	var smallest domain.Denomination
	for d, c := range i.cash.Notes {
		if c > 0 && (smallest == 0 || d < smallest) {
			smallest = d
		}
	}
	if smallest == 0 {
		return 0, domain.ErrEmptyInventory
	}
	return smallest, nil
}

// Total 回傳目前庫存總額。
func (i *Inventory) Total() int64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.cash.Amount
}

// Snapshot 回傳庫存的值拷貝。
func (i *Inventory) Snapshot() domain.Money {
	i.mu.Lock()
	defer i.mu.Unlock()
	return domain.Money{Amount: i.cash.Amount, Notes: i.cash.Notes.Clone()}
}

// Plan runs the largest-first pass without touching the inventory and
// returns the breakdown together with the amount it could not cover.
func (i *Inventory) Plan(amount int64) (domain.Money, int64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return plan(i.cash.Notes, amount)
}

// Dispense 由大面額到小面額貪婪出鈔，並就地扣減庫存。
// amount 必須 > 0 且不超過庫存總額；若貪婪結果仍有餘額無法湊出，回傳 ErrCannotDispense 且不改變庫存。
func (i *Inventory) Dispense(amount int64) (domain.Money, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if amount <= 0 {
		return domain.Money{}, domain.ErrInvalidAmount
	}
	if amount > i.cash.Amount {
		return domain.Money{}, domain.ErrAmountTooBig
	}

	out, remaining := plan(i.cash.Notes, amount)
	if remaining != 0 {
		return domain.Money{}, domain.ErrCannotDispense
	}

	for d, c := range out.Notes {
		i.cash.Notes[d] -= c
	}
	i.cash.Amount -= amount
	return out, nil
}

// plan 為貪婪演算法本體：每個面額取 min(剩餘 / 面額, 可用張數)，不回溯。
func plan(stock domain.Notes, amount int64) (domain.Money, int64) {
	out := domain.Money{Amount: amount, Notes: make(domain.Notes, len(stock))}
	remaining := amount
	for _, d := range stock.Descending() {
		n := remaining / int64(d)
		if n > stock[d] {
			n = stock[d]
		}
		out.Notes[d] = n
		remaining -= int64(d) * n
	}
	return out, remaining
}
