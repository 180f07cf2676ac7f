package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/clutchcall/ledger-platform/internal/shared/config"
	"github.com/clutchcall/ledger-platform/internal/shared/db"
	"github.com/clutchcall/ledger-platform/internal/shared/kafka"
	"github.com/clutchcall/ledger-platform/internal/shared/logger"
	"github.com/clutchcall/ledger-platform/internal/shared/metrics"
	ev "github.com/clutchcall/ledger-platform/pkg/contracts/events"
)

// ticket-audit-worker consome eventos ticket_settled e grava a trilha de
// liquidações no Postgres. O ledger em si vive no KV; esta trilha é só
// auditoria, então o worker pode ficar atrás do tópico sem afetar a API.
func main() {
	cfg := config.Load()
	log, err := logger.New("ticket-audit-worker", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Postgres para a trilha de auditoria
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	// Kafka consumer do tópico ticket_settled
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicTicketSettled, "ticket-audit")
	defer reader.Close()

	consumed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ticket_audit_messages_consumed_total", Help: "mensagens consumidas"})
	persisted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ticket_audit_rows_written_total", Help: "linhas de auditoria gravadas"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ticket_audit_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, persisted, failures)

	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})
	defer metricsSrv.Close()

	log.Info("ticket-audit-worker started", zap.String("consume", cfg.TopicTicketSettled))

	ctx := context.Background()

	for {
		_, value, err := kafka.ReadNext(ctx, reader)
		if err != nil {
			failures.WithLabelValues("read").Inc()
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		consumed.Inc()

		var settled ev.TicketSettled
		if jerr := json.Unmarshal(value, &settled); jerr != nil {
			failures.WithLabelValues("unmarshal").Inc()
			log.Error("unmarshal ticket_settled", zap.Error(jerr))
			continue
		}

		if err := insertAuditRow(ctx, pg, &settled); err != nil {
			failures.WithLabelValues("insert").Inc()
			log.Error("audit insert", zap.String("ticketId", settled.TicketID), zap.Error(err))
			// Backoff simples para evitar flood em caso de erro
			time.Sleep(500 * time.Millisecond)
			continue
		}
		persisted.Inc()
	}
}

func insertAuditRow(ctx context.Context, pg *sql.DB, e *ev.TicketSettled) error {
	_, err := pg.ExecContext(ctx, `
		INSERT INTO ticket_settlements (ticket_id, old_status, new_status, adjustment, settled_at)
		VALUES ($1,$2,$3,$4,$5)`,
		e.TicketID, e.OldStatus, e.NewStatus, e.Adjustment, time.UnixMilli(e.TsUnixMs))
	return err
}
