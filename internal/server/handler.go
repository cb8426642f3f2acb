// internal/server/handler.go
//
// Package server 以 HTTP 提供單一 ATM 的操作介面（插卡、退卡、查詢、提款、補鈔、手續費）。
// handler 只負責解析請求、呼叫 atm.Machine、輸出 JSON；業務規則全部在 atm 層。
package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"atm/internal/atm"
	"atm/internal/domain"
)

// Server 為 HTTP 層核心結構，持有一台 ATM。
type Server struct {
	Machine *atm.Machine
	log     *zap.Logger
}

// NewServer 建立 HTTP 伺服器；log 為 nil 時不輸出日誌。
func NewServer(m *atm.Machine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{Machine: m, log: log}
}

// info 處理 GET /info → 機器製造商與序號。
func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Machine.Identity())
}

// insertCard 處理 POST /card {card_number}。
func (s *Server) insertCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CardNumber string `json:"card_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	if err := s.Machine.InsertCard(req.CardNumber); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "inserted"})
}

// returnCard 處理 DELETE /card。
func (s *Server) returnCard(w http.ResponseWriter, r *http.Request) {
	if err := s.Machine.ReturnCard(); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "returned"})
}

// balance 處理 GET /balance。
func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	bal, err := s.Machine.Balance()
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"balance": bal})
}

// withdraw 處理 POST /withdraw {amount} → 吐出的鈔票組合。
func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	money, err := s.Machine.WithdrawMoney(req.Amount)
	// 結算失敗時鈔票已吐出，回應須告知客戶
	if err != nil && money.Amount > 0 {
		writeDispensedErr(w, err, money)
		return
	}
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, money)
}

// loadCash 處理 POST /cash {amount, notes}（操作員）。
func (s *Server) loadCash(w http.ResponseWriter, r *http.Request) {
	var req domain.Money
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, err, http.StatusBadRequest)
		return
	}
	if err := s.Machine.LoadMoney(req); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "loaded", "amount": req.Amount})
}

// cash 處理 GET /cash（操作員）。
func (s *Server) cash(w http.ResponseWriter, r *http.Request) {
	money, err := s.Machine.Cash()
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, money)
}

// fees 處理 GET /fees。沒有任何歷史時回傳 null。
func (s *Server) fees(w http.ResponseWriter, r *http.Request) {
	fees, err := s.Machine.ChargedFees()
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fees)
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
