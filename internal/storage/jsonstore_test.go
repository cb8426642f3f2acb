// internal/storage/jsonstore_test.go
//
// 驗證帳戶資料集的寫入、讀回與內容檢查。
// 使用 t.TempDir() 確保測試不汙染本機環境。
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixturesSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	orig := DefaultFixtures()

	require.NoError(t, SaveFixtures(path, orig))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "tmp file should be renamed away")

	loaded, err := LoadFixtures(path)
	require.NoError(t, err)
	assert.Equal(t, "json_fixtures", loaded.Meta.Storage)
	assert.Equal(t, 1, loaded.Meta.Version)
	assert.False(t, loaded.Meta.Timestamp.IsZero())
	assert.Equal(t, orig.OperatorCard, loaded.OperatorCard)
	require.Len(t, loaded.Accounts, len(orig.Accounts))
	for i := range orig.Accounts {
		assert.Equal(t, orig.Accounts[i].CardNumber, loaded.Accounts[i].CardNumber)
		assert.True(t, orig.Accounts[i].Balance.Equal(loaded.Accounts[i].Balance))
		assert.True(t, orig.Accounts[i].Blocked.Equal(loaded.Accounts[i].Blocked))
	}
}

func TestLoadFixturesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFixtures(filepath.Join(dir, "missing.json"))
	assert.True(t, os.IsNotExist(err))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{bad json"), 0o600))
	_, err = LoadFixtures(broken)
	assert.Error(t, err)

	over := filepath.Join(dir, "over.json")
	require.NoError(t, os.WriteFile(over, []byte(
		`{"operator_card":"9","accounts":[{"card_number":"1","balance":"10","blocked":"11"}]}`), 0o600))
	_, err = LoadFixtures(over)
	assert.ErrorIs(t, err, ErrInvalidFixtures)
}

func TestFixturesValidate(t *testing.T) {
	acct := func(n string, bal, blk int64) PersistAccount {
		return PersistAccount{CardNumber: n, Balance: decimal.NewFromInt(bal), Blocked: decimal.NewFromInt(blk)}
	}
	cases := []struct {
		name string
		f    Fixtures
		ok   bool
	}{
		{"default", DefaultFixtures(), true},
		{"empty card", Fixtures{Accounts: []PersistAccount{acct("", 1, 0)}}, false},
		{"duplicate", Fixtures{Accounts: []PersistAccount{acct("1", 1, 0), acct("1", 2, 0)}}, false},
		{"operator in accounts", Fixtures{OperatorCard: "1", Accounts: []PersistAccount{acct("1", 1, 0)}}, false},
		{"negative blocked", Fixtures{Accounts: []PersistAccount{acct("1", 1, -1)}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.f.Validate()
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidFixtures)
			}
		})
	}
}

func TestFixturesWithOperator(t *testing.T) {
	f := DefaultFixtures()

	kept, err := f.WithOperator("")
	require.NoError(t, err)
	assert.Equal(t, f.OperatorCard, kept.OperatorCard)

	moved, err := f.WithOperator("4000000000000002")
	require.NoError(t, err)
	assert.Equal(t, "4000000000000002", moved.OperatorCard)
	assert.Equal(t, "5378919127447013", f.OperatorCard)

	// 覆寫成某個客戶卡號：該卡會同時是客戶與操作員
	_, err = f.WithOperator(f.Accounts[0].CardNumber)
	assert.ErrorIs(t, err, ErrInvalidFixtures)
}
