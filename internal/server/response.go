// internal/server/response.go
//
// 統一 HTTP 回應格式與領域錯誤 → HTTP 狀態碼的對應。
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"atm/internal/domain"
)

// errorBody 為錯誤回應格式。
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	// Dispensed 為錯誤發生前已吐出的鈔票（例如主機結算失敗），客戶仍須取走。
	Dispensed *domain.Money `json:"dispensed,omitempty"`
}

// writeJSON 統一輸出成功回應。
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr 輸出非領域錯誤（例如 JSON 解析失敗）。
func writeErr(w http.ResponseWriter, err error, code int) {
	writeJSON(w, code, errorBody{Error: err.Error()})
}

// errorStatus 依序比對領域錯誤；第一個符合者決定狀態碼與錯誤代碼。
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{domain.ErrAmountNotMultiple, http.StatusBadRequest, "AMOUNT_NOT_MULTIPLE"},
	{domain.ErrInvalidDeclaredAmount, http.StatusBadRequest, "INVALID_DECLARED_AMOUNT"},
	{domain.ErrInvalidAccountReference, http.StatusBadRequest, "INVALID_ACCOUNT_REFERENCE"},
	{domain.ErrUnknownDenomination, http.StatusBadRequest, "UNKNOWN_DENOMINATION"},
	{domain.ErrNotAuthorizedOperator, http.StatusForbidden, "NOT_AUTHORIZED_OPERATOR"},
	{domain.ErrOperatorNotPermitted, http.StatusForbidden, "OPERATOR_NOT_PERMITTED"},
	{domain.ErrAccountNotFound, http.StatusNotFound, "ACCOUNT_NOT_FOUND"},
	{domain.ErrOperationNotFound, http.StatusNotFound, "OPERATION_NOT_FOUND"},
	{domain.ErrInsufficientFunds, http.StatusConflict, "INSUFFICIENT_FUNDS"},
	{domain.ErrAmountTooBig, http.StatusConflict, "AMOUNT_TOO_BIG"},
	{domain.ErrCannotDispense, http.StatusConflict, "CANNOT_DISPENSE"},
	{domain.ErrEmptyInventory, http.StatusConflict, "EMPTY_INVENTORY"},
	{domain.ErrCardAlreadyInserted, http.StatusConflict, "CARD_ALREADY_INSERTED"},
	{domain.ErrNoCardInserted, http.StatusConflict, "NO_CARD_INSERTED"},
}

// domainErrBody 依 errorStatus 決定狀態碼與錯誤內容；無法辨識者為 500。
func domainErrBody(err error) (int, errorBody) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status, errorBody{Error: err.Error(), Code: e.code}
		}
	}
	return http.StatusInternalServerError, errorBody{Error: err.Error(), Code: "INTERNAL"}
}

// writeDomainErr 將領域錯誤轉為 HTTP 回應。
func writeDomainErr(w http.ResponseWriter, err error) {
	status, body := domainErrBody(err)
	writeJSON(w, status, body)
}

// writeDispensedErr 與 writeDomainErr 相同，但附上已吐出的鈔票。
func writeDispensedErr(w http.ResponseWriter, err error, money domain.Money) {
	status, body := domainErrBody(err)
	body.Dispensed = &money
	writeJSON(w, status, body)
}
