// internal/domain/errors.go
//
// 本檔集中定義 ATM 的「領域錯誤（domain errors）」。
// 每一種錯誤只代表一個被違反的前置條件，由上層（atm / server）以 errors.Is 判斷，
// server 層再轉換成對應的 HTTP 狀態碼。

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount 代表金額非法（<=0，或結算金額超出已凍結金額）。
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountTooBig 代表提款金額超過機器內現金總額。
	ErrAmountTooBig = errors.New("amount exceeds cash available in the machine")

	// ErrAmountNotMultiple 代表提款金額不是最小面額的整數倍。
	// 實際回傳的是 *AmountNotMultipleError，可用 errors.Is 比對此值。
	ErrAmountNotMultiple = errors.New("amount is not a multiple of the smallest banknote")

	// ErrInsufficientFunds 代表帳戶可用餘額不足（含手續費）。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCardAlreadyInserted 代表卡片槽已有卡片。
	ErrCardAlreadyInserted = errors.New("card is already inserted")

	// ErrNoCardInserted 代表目前沒有插入卡片。
	ErrNoCardInserted = errors.New("no card inserted")

	// ErrNotAuthorizedOperator 代表非操作員卡嘗試執行補鈔等特權操作。
	ErrNotAuthorizedOperator = errors.New("not an authorized operator")

	// ErrOperatorNotPermitted 代表操作員卡嘗試凍結款項（操作員不能提款）。
	ErrOperatorNotPermitted = errors.New("operation not permitted for operator card")

	// ErrAccountNotFound 代表卡號在主機端不存在。
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAccountReference 代表卡號為空。
	ErrInvalidAccountReference = errors.New("invalid account reference")

	// ErrOperationNotFound 代表主機端找不到指定的交易紀錄。
	ErrOperationNotFound = errors.New("operation not found")

	// ErrInvalidDeclaredAmount 代表補鈔時申報總額與各面額張數加總不符。
	ErrInvalidDeclaredAmount = errors.New("declared amount does not match banknotes")

	// ErrUnknownDenomination 代表補鈔時出現不支援的面額。
	ErrUnknownDenomination = errors.New("unknown denomination")

	// ErrEmptyInventory 代表機器內沒有任何可用鈔票。
	ErrEmptyInventory = errors.New("cash inventory is empty")

	// ErrCannotDispense 代表以現有鈔票無法湊出請求金額。
	ErrCannotDispense = errors.New("requested amount cannot be composed from available banknotes")
)

// AmountNotMultipleError carries the smallest banknote the amount must be a multiple of.
type AmountNotMultipleError struct {
	Denomination Denomination
}

func (e *AmountNotMultipleError) Error() string {
	return fmt.Sprintf("%s %d", ErrAmountNotMultiple.Error(), e.Denomination)
}

// Is lets errors.Is(err, ErrAmountNotMultiple) match.
func (e *AmountNotMultipleError) Is(target error) bool {
	return target == ErrAmountNotMultiple
}
