// internal/cash/inventory_test.go
//
// 出鈔模組單元測試：補鈔驗證、最小面額、貪婪出鈔與庫存總額一致性。

package cash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atm/internal/domain"
)

// loaded 建立已補鈔的庫存，補鈔失敗即讓測試失敗。
func loaded(t *testing.T, notes domain.Notes) *Inventory {
	t.Helper()
	inv := NewInventory()
	require.NoError(t, inv.Reload(domain.NewMoney(notes)))
	return inv
}

func TestReload(t *testing.T) {
	t.Run("replaces whole inventory", func(t *testing.T) {
		inv := loaded(t, domain.Notes{domain.Five: 10, domain.Fifty: 2})
		require.NoError(t, inv.Reload(domain.NewMoney(domain.Notes{domain.Twenty: 3})))

		snap := inv.Snapshot()
		assert.Equal(t, int64(60), snap.Amount)
		assert.Equal(t, domain.Notes{domain.Twenty: 3}, snap.Notes)
	})

	t.Run("declared amount mismatch leaves inventory unchanged", func(t *testing.T) {
		inv := loaded(t, domain.Notes{domain.Five: 1000, domain.Twenty: 2000, domain.Fifty: 4000})
		before := inv.Snapshot()

		err := inv.Reload(domain.Money{
			Amount: 245001,
			Notes:  domain.Notes{domain.Five: 1000, domain.Twenty: 2000, domain.Fifty: 4000},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDeclaredAmount)
		assert.Equal(t, before, inv.Snapshot())
		assert.Equal(t, int64(245000), inv.Total())
	})

	t.Run("unknown denomination", func(t *testing.T) {
		inv := NewInventory()
		err := inv.Reload(domain.Money{Amount: 30, Notes: domain.Notes{domain.Denomination(3): 10}})
		assert.ErrorIs(t, err, domain.ErrUnknownDenomination)
		assert.Zero(t, inv.Total())
	})

	t.Run("negative count", func(t *testing.T) {
		inv := NewInventory()
		err := inv.Reload(domain.Money{Amount: 0, Notes: domain.Notes{domain.Ten: -1, domain.Five: 2}})
		assert.ErrorIs(t, err, domain.ErrInvalidDeclaredAmount)
	})

	t.Run("note count overflow", func(t *testing.T) {
		inv := loaded(t, domain.Notes{domain.Ten: 5})
		before := inv.Snapshot()

		// 20 × 4611686018427387909 在 int64 下溢位後恰好等於 100。
		err := inv.Reload(domain.Money{Amount: 100, Notes: domain.Notes{domain.Twenty: 4611686018427387909}})
		assert.ErrorIs(t, err, domain.ErrInvalidDeclaredAmount)

		err = inv.Reload(domain.Money{Amount: 0, Notes: domain.Notes{
			domain.FiveHundred: math.MaxInt64 / 500,
			domain.Fifty:       math.MaxInt64 / 50,
		}})
		assert.ErrorIs(t, err, domain.ErrInvalidDeclaredAmount)

		assert.Equal(t, before, inv.Snapshot())
	})

	t.Run("caller map is copied", func(t *testing.T) {
		notes := domain.Notes{domain.Ten: 5}
		inv := loaded(t, notes)
		notes[domain.Ten] = 100
		assert.Equal(t, int64(50), inv.Total())
		assert.Equal(t, int64(5), inv.Snapshot().Notes[domain.Ten])
	})
}

func TestMinDenomination(t *testing.T) {
	inv := loaded(t, domain.Notes{domain.Five: 0, domain.Twenty: 1, domain.Fifty: 3})
	d, err := inv.MinDenomination()
	require.NoError(t, err)
	assert.Equal(t, domain.Twenty, d)

	_, err = NewInventory().MinDenomination()
	assert.ErrorIs(t, err, domain.ErrEmptyInventory)

	empty := loaded(t, domain.Notes{domain.Five: 0, domain.Ten: 0})
	_, err = empty.MinDenomination()
	assert.ErrorIs(t, err, domain.ErrEmptyInventory)
}

func TestDispenseLargestFirst(t *testing.T) {
	inv := loaded(t, domain.Notes{
		domain.Five:   50,
		domain.Ten:    100,
		domain.Twenty: 200,
		domain.Fifty:  10,
	})
	total := inv.Total()

	out, err := inv.Dispense(585)
	require.NoError(t, err)

	assert.Equal(t, int64(585), out.Amount)
	assert.Equal(t, int64(585), out.Notes.Sum())
	assert.Equal(t, int64(10), out.Notes[domain.Fifty])
	assert.Equal(t, int64(4), out.Notes[domain.Twenty])
	assert.Equal(t, int64(0), out.Notes[domain.Ten])
	assert.Equal(t, int64(1), out.Notes[domain.Five])

	snap := inv.Snapshot()
	assert.Equal(t, total-585, snap.Amount)
	assert.Equal(t, snap.Amount, snap.Notes.Sum())
	assert.Equal(t, int64(0), snap.Notes[domain.Fifty])
	assert.Equal(t, int64(196), snap.Notes[domain.Twenty])
	assert.Equal(t, int64(49), snap.Notes[domain.Five])
}

func TestDispenseIsDeterministic(t *testing.T) {
	notes := domain.Notes{domain.Five: 7, domain.Twenty: 9, domain.Hundred: 2}
	a, err := loaded(t, notes).Dispense(345)
	require.NoError(t, err)
	b, err := loaded(t, notes).Dispense(345)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, domain.Notes{domain.Hundred: 2, domain.Twenty: 7, domain.Five: 1}, a.Notes)
}

func TestDispenseKeepsTotalInvariant(t *testing.T) {
	inv := loaded(t, domain.Notes{domain.Five: 1000, domain.Twenty: 2000, domain.Fifty: 4000})
	for _, amt := range []int64{5, 20, 55, 44000, 200, 1235} {
		before := inv.Total()
		out, err := inv.Dispense(amt)
		require.NoError(t, err, "amount=%d", amt)
		assert.Equal(t, amt, out.Notes.Sum(), "amount=%d", amt)

		snap := inv.Snapshot()
		assert.Equal(t, before-amt, snap.Amount)
		assert.Equal(t, snap.Amount, snap.Notes.Sum())
	}
}

func TestDispenseRejects(t *testing.T) {
	inv := loaded(t, domain.Notes{domain.Twenty: 3, domain.Fifty: 1})
	before := inv.Snapshot()

	_, err := inv.Dispense(0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = inv.Dispense(200)
	assert.ErrorIs(t, err, domain.ErrAmountTooBig)

	// 60 需要 3 張 20，但貪婪先取 50，剩 10 無法湊出。
	_, err = inv.Dispense(60)
	assert.ErrorIs(t, err, domain.ErrCannotDispense)

	assert.Equal(t, before, inv.Snapshot())
}

func TestPlanDoesNotMutate(t *testing.T) {
	inv := loaded(t, domain.Notes{domain.Ten: 1, domain.Fifty: 1})
	out, remaining := inv.Plan(70)
	assert.Equal(t, int64(10), remaining)
	assert.Equal(t, int64(1), out.Notes[domain.Fifty])
	assert.Equal(t, int64(1), out.Notes[domain.Ten])
	assert.Equal(t, int64(60), inv.Total())
}
