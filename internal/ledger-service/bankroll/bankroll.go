package bankroll

import "context"

// Bankroll é o saldo único disponível para apostas.
// Variante local (KV) e remota (bankroll-service) são intercambiáveis:
// a liquidação lê o valor atual antes do ajuste e grava o ajustado depois.
type Bankroll interface {
	Current(ctx context.Context) (float64, error)
	Set(ctx context.Context, balance float64) error
}
