// internal/host/repository.go

package host

import (
	"atm/internal/domain"
	"atm/internal/storage"
)

// Repository resolves a card number to its ledger entry.
// Returned ledgers are owned by the repository and mutated in place under
// the Service lock.
type Repository interface {
	Find(cardNumber string) (*Ledger, error)
}

// MemoryRepository is a fixed in-memory account set.
type MemoryRepository struct {
	accounts map[string]*Ledger
}

// NewMemoryRepository 以呼叫端提供的帳戶集合建立 repository（測試各自建立，不共用全域狀態）。
func NewMemoryRepository(accounts map[string]*Ledger) *MemoryRepository {
	m := make(map[string]*Ledger, len(accounts))
	for k, v := range accounts {
		cp := *v
		m[k] = &cp
	}
	return &MemoryRepository{accounts: m}
}

// Find 回傳帳戶；不存在時回傳 ErrAccountNotFound。
func (r *MemoryRepository) Find(cardNumber string) (*Ledger, error) {
	l, ok := r.accounts[cardNumber]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return l, nil
}

// FromFixtures 由 storage.Fixtures 建立 repository。
func FromFixtures(f storage.Fixtures) *MemoryRepository {
	m := make(map[string]*Ledger, len(f.Accounts))
	for _, a := range f.Accounts {
		m[a.CardNumber] = NewLedger(a.Balance, a.Blocked)
	}
	return &MemoryRepository{accounts: m}
}
