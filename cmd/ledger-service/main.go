package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/clutchcall/ledger-platform/internal/ledger-service/bankroll"
	lhttp "github.com/clutchcall/ledger-platform/internal/ledger-service/http"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/producer"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/settlement"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/store"
	"github.com/clutchcall/ledger-platform/internal/shared/cache"
	"github.com/clutchcall/ledger-platform/internal/shared/config"
	"github.com/clutchcall/ledger-platform/internal/shared/kafka"
	"github.com/clutchcall/ledger-platform/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New("ledger-service", cfg.Env)
	defer log.Sync()

	// Redis: chave do histórico e do bankroll local
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writers (tópicos ticket_placed e ticket_settled)
	placedWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTicketPlaced)
	defer placedWriter.Close()
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTicketSettled)
	defer settledWriter.Close()

	// deps
	kv := store.NewRedisKV(rdb)
	history := store.NewHistory(kv, cfg.HistoryKey, log)
	publ := producer.NewKafkaPublisher(placedWriter, settledWriter)

	// Bankroll local (Redis) ou remoto (bankroll-service), intercambiáveis
	var bank bankroll.Bankroll
	if cfg.BankrollURL != "" {
		bank = bankroll.NewClient(cfg.BankrollURL)
		log.Info("bankroll remoto", zap.String("url", cfg.BankrollURL))
	} else {
		bank = bankroll.NewLocal(kv, cfg.BankrollKey, cfg.DefaultBankroll, log)
	}

	svc := settlement.New(log, history, bank, publ)

	// HTTP público
	api := lhttp.NewServer(log, svc)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := rdb.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() {
		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, metricsMux)
	}()

	log.Info("ledger-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
