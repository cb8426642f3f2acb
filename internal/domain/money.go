// Package domain 定義 ATM 各模組共用的型別：鈔票面額、鈔票組合、卡片資訊、手續費紀錄，
// 以及集中管理的領域錯誤。不含任何 HTTP、儲存或主機端細節。
package domain

import (
	"math"
	"sort"
)

// Denomination is a banknote face value in whole currency units.
type Denomination int64

const (
	Five        Denomination = 5
	Ten         Denomination = 10
	Twenty      Denomination = 20
	Fifty       Denomination = 50
	Hundred     Denomination = 100
	TwoHundred  Denomination = 200
	FiveHundred Denomination = 500
)

// Denominations lists every supported face value in ascending order.
var Denominations = []Denomination{Five, Ten, Twenty, Fifty, Hundred, TwoHundred, FiveHundred}

// Valid reports whether d is a supported face value.
func (d Denomination) Valid() bool {
	for _, v := range Denominations {
		if v == d {
			return true
		}
	}
	return false
}

// Notes maps a denomination to a number of banknotes.
type Notes map[Denomination]int64

// Sum 回傳 Σ(面額 × 張數)。
func (n Notes) Sum() int64 {
	var total int64
	for d, c := range n {
		total += int64(d) * c
	}
	return total
}

// CheckedSum 與 Sum 相同，但張數為負或加總超過 int64 範圍時回傳 false。
func (n Notes) CheckedSum() (int64, bool) {
	var total int64
	for d, c := range n {
		if d <= 0 || c < 0 {
			return 0, false
		}
		if c > (math.MaxInt64-total)/int64(d) {
			return 0, false
		}
		total += int64(d) * c
	}
	return total, true
}

// Clone 回傳獨立的拷貝，避免呼叫端改寫內部 map。
func (n Notes) Clone() Notes {
	out := make(Notes, len(n))
	for d, c := range n {
		out[d] = c
	}
	return out
}

// Descending 回傳 map 中所有面額，由大到小排序。
func (n Notes) Descending() []Denomination {
	out := make([]Denomination, 0, len(n))
	for d := range n {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// Money is a bundle of banknotes together with its declared total.
type Money struct {
	Amount int64 `json:"amount"`
	Notes  Notes `json:"notes"`
}

// NewMoney builds a bundle whose Amount is the weighted sum of notes.
func NewMoney(notes Notes) Money {
	return Money{Amount: notes.Sum(), Notes: notes}
}
