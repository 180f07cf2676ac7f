package store

import "context"

// KV é a primitiva de persistência chave-valor usada pelo ledger.
// Set e Del são best-effort: o chamador loga e segue em frente se falharem.
type KV interface {
	Get(ctx context.Context, key string) (val string, ok bool, err error)
	Set(ctx context.Context, key, val string) error
	Del(ctx context.Context, key string) error
}
