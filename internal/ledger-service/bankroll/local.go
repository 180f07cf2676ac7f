package bankroll

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/clutchcall/ledger-platform/internal/ledger-service/store"
)

// Local guarda o bankroll como string decimal em uma chave do KV.
// Valor ausente ou inválido cai no saldo default; escrita é best-effort.
type Local struct {
	kv  store.KV
	key string
	def float64
	log *zap.Logger
}

func NewLocal(kv store.KV, key string, def float64, log *zap.Logger) *Local {
	return &Local{kv: kv, key: key, def: def, log: log}
}

func (l *Local) Current(ctx context.Context) (float64, error) {
	raw, ok, err := l.kv.Get(ctx, l.key)
	if err != nil {
		l.log.Warn("bankroll load", zap.Error(err))
		return l.def, nil
	}
	if !ok {
		return l.def, nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || n < 0 {
		l.log.Warn("bankroll parse", zap.String("raw", raw))
		return l.def, nil
	}
	return n, nil
}

func (l *Local) Set(ctx context.Context, balance float64) error {
	if balance < 0 {
		balance = 0
	}
	if err := l.kv.Set(ctx, l.key, strconv.FormatFloat(balance, 'f', -1, 64)); err != nil {
		l.log.Warn("bankroll save", zap.Error(err))
	}
	return nil
}
