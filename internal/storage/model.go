// internal/storage/model.go
//
// 定義主機模擬器的帳戶資料集 (fixtures) 格式。
// 本層只負責資料結構與序列化，帳戶的凍結、結算等規則由 host 套件處理。
package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta 為資料集的中繼資料 (metadata)。
type Meta struct {
	Storage   string    `json:"storage"`        // 儲存類型，例如 "json_fixtures"
	Version   int       `json:"version"`        // 結構版本號
	Timestamp time.Time `json:"timestamp"`      // 寫出時間
	Note      string    `json:"note,omitempty"` // 備註
}

// PersistAccount 為單一卡片帳戶的序列化格式。
type PersistAccount struct {
	CardNumber string          `json:"card_number"`
	Balance    decimal.Decimal `json:"balance"`
	Blocked    decimal.Decimal `json:"blocked"`
}

// Fixtures 為主機模擬器啟動時載入的完整帳戶資料集。
type Fixtures struct {
	Meta         Meta             `json:"_meta"`
	OperatorCard string           `json:"operator_card"`
	Accounts     []PersistAccount `json:"accounts"`
}

// DefaultFixtures 回傳內建的示範帳戶集合。
func DefaultFixtures() Fixtures {
	return Fixtures{
		Meta:         Meta{Storage: "json_fixtures", Version: 1, Note: "demo card set"},
		OperatorCard: "5378919127447013",
		Accounts: []PersistAccount{
			{CardNumber: "5474497414986400", Balance: decimal.NewFromInt(1000), Blocked: decimal.Zero},
			{CardNumber: "5460213706709186", Balance: decimal.NewFromInt(5000), Blocked: decimal.NewFromInt(5000)},
			{CardNumber: "5372100906627713", Balance: decimal.NewFromInt(100000), Blocked: decimal.NewFromInt(55000)},
			{CardNumber: "5157430603601427", Balance: decimal.Zero, Blocked: decimal.Zero},
			{CardNumber: "5249281006972497", Balance: decimal.NewFromInt(10), Blocked: decimal.Zero},
		},
	}
}
