// internal/server/router.go
//
// HTTP 路由註冊；與 handler.go 分離，router 專注綁定與中介層。
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Router 建立並回傳整個 HTTP 處理鏈，同時掛在 / 與 /api/v1 之下。
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Get("/health", s.health)

	routes := func(r chi.Router) {
		r.Get("/info", s.info)

		r.Post("/card", s.insertCard)
		r.Delete("/card", s.returnCard)

		r.Get("/balance", s.balance)
		r.Post("/withdraw", s.withdraw)
		r.Get("/fees", s.fees)

		r.Get("/cash", s.cash)
		r.Post("/cash", s.loadCash)
	}
	r.Route("/api/v1", routes)
	r.Group(routes)

	return r
}

// requestLog 以 zap 記錄每個請求的方法、路徑、狀態碼與耗時。
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
