// cmd/server/main.go

// 本服務以 HTTP 提供一台模擬 ATM：插卡、查詢餘額、操作員補鈔、提款與手續費查詢。
// 此檔案負責載入設定與帳戶資料集，明確組裝 host / atm / server 模組後啟動 HTTP 伺服器。

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"atm/internal/atm"
	"atm/internal/config"
	"atm/internal/host"
	"atm/internal/logging"
	"atm/internal/server"
	"atm/internal/storage"
)

func main() {
	writeFixtures := flag.Bool("write-fixtures", false, "write the demo card set to ATM_FIXTURES and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *writeFixtures {
		if err := storage.SaveFixtures(cfg.FixturesPath, storage.DefaultFixtures()); err != nil {
			log.Fatal("write fixtures", zap.String("path", cfg.FixturesPath), zap.Error(err))
		}
		log.Info("fixtures written", zap.String("path", cfg.FixturesPath))
		return
	}

	// 載入帳戶資料集；檔案不存在時使用內建示範資料
	fixtures, err := storage.LoadFixtures(cfg.FixturesPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warn("fixtures file not found, using demo card set", zap.String("path", cfg.FixturesPath))
		fixtures = storage.DefaultFixtures()
	case err != nil:
		log.Fatal("load fixtures", zap.String("path", cfg.FixturesPath), zap.Error(err))
	}

	// ATM_OPERATOR_CARD 可覆寫資料集中的操作員卡號，覆寫後須重新驗證
	fixtures, err = fixtures.WithOperator(cfg.OperatorCard)
	if err != nil {
		log.Fatal("operator card override", zap.Error(err))
	}

	svc := host.NewService(host.FromFixtures(fixtures), fixtures.OperatorCard, cfg.FeePercent,
		host.WithLogger(log.Named("host")))
	machine := atm.New(svc, atm.Identity{
		Manufacturer: cfg.Manufacturer,
		SerialNumber: cfg.SerialNumber,
	}, log.Named("atm"))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewServer(machine, log.Named("http")).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 監聽 SIGINT/SIGTERM，收到後優雅關閉
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("ATM server running",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("serial_number", cfg.SerialNumber),
		zap.Int("accounts", len(fixtures.Accounts)),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http server", zap.Error(err))
	}
}
