// internal/storage/jsonstore.go
//
// 提供帳戶資料集 (Fixtures) 的 JSON 讀寫。
// 寫入採「原子寫入」：先寫 .tmp 檔，再以 rename() 取代原檔。
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrInvalidFixtures 代表資料集內容不合法（卡號重複、空白或凍結金額超過餘額）。
var ErrInvalidFixtures = errors.New("invalid fixtures")

// LoadFixtures 讀取並驗證指定路徑的 JSON 資料集。
func LoadFixtures(path string) (Fixtures, error) {
	var f Fixtures
	file, err := os.Open(path)
	if err != nil {
		return f, err
	}
	defer file.Close()
	if err := json.NewDecoder(file).Decode(&f); err != nil {
		return f, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, f.Validate()
}

// SaveFixtures 將資料集以縮排 JSON 原子寫入 path。
func SaveFixtures(path string, f Fixtures) error {
	if err := f.Validate(); err != nil {
		return err
	}
	f.Meta.Storage = "json_fixtures"
	f.Meta.Timestamp = time.Now()
	tmp := path + ".tmp"

	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// WithOperator 以 card 覆寫操作員卡號（空字串表示沿用原值）並重新驗證，
// 避免操作員卡與某個帳戶卡號相同。
func (f Fixtures) WithOperator(card string) (Fixtures, error) {
	if card != "" {
		f.OperatorCard = card
	}
	return f, f.Validate()
}

// Validate 檢查每個帳戶：卡號非空且不重複、不等於操作員卡、0 <= blocked <= balance。
func (f Fixtures) Validate() error {
	seen := make(map[string]struct{}, len(f.Accounts))
	for _, a := range f.Accounts {
		if a.CardNumber == "" {
			return fmt.Errorf("%w: empty card number", ErrInvalidFixtures)
		}
		if a.CardNumber == f.OperatorCard {
			return fmt.Errorf("%w: card %s is the operator card", ErrInvalidFixtures, a.CardNumber)
		}
		if _, dup := seen[a.CardNumber]; dup {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidFixtures, a.CardNumber)
		}
		seen[a.CardNumber] = struct{}{}
		if a.Blocked.IsNegative() || a.Blocked.GreaterThan(a.Balance) {
			return fmt.Errorf("%w: card %s blocked %s exceeds balance %s",
				ErrInvalidFixtures, a.CardNumber, a.Blocked, a.Balance)
		}
	}
	return nil
}
