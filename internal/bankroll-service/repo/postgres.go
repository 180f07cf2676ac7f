package repo

import (
	"context"
	"database/sql"
)

// Postgres implementa a persistência do bankroll em banco.
// Uma única linha (id=1) guarda o saldo corrente; cada escrita registra
// o ajuste em bankroll_adjustments para auditoria.
type Postgres struct {
	db  *sql.DB
	def float64 // saldo inicial quando a linha ainda não existe
}

func NewPostgres(db *sql.DB, def float64) *Postgres { return &Postgres{db: db, def: def} }

// GetOrCreate retorna o saldo corrente, criando a linha com o default se preciso
// Usa transação para garantir atomicidade
func (p *Postgres) GetOrCreate(ctx context.Context) (float64, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var balance float64
	err = tx.QueryRowContext(ctx, `SELECT current_balance FROM bankrolls WHERE id=1`).Scan(&balance)
	if err == sql.ErrNoRows {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO bankrolls(id, current_balance) VALUES(1, $1)`, p.def); err != nil {
			return 0, err
		}
		balance = p.def
	} else if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return balance, nil
}

// SetBalance grava o novo saldo e registra o ajuste na auditoria
// Lock pessimista na linha do bankroll; saldo negativo vira zero
func (p *Postgres) SetBalance(ctx context.Context, balance float64, reason string) (float64, error) {
	if balance < 0 {
		balance = 0
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var old float64
	err = tx.QueryRowContext(ctx, `SELECT current_balance FROM bankrolls WHERE id=1 FOR UPDATE`).Scan(&old)
	if err == sql.ErrNoRows {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO bankrolls(id, current_balance) VALUES(1, $1)`, p.def); err != nil {
			return 0, err
		}
		old = p.def
	} else if err != nil {
		return 0, err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE bankrolls SET current_balance=$1, updated_at=NOW() WHERE id=1`, balance); err != nil {
		return 0, err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO bankroll_adjustments(old_balance, new_balance, delta, reason)
		VALUES ($1,$2,$3,$4)`, old, balance, balance-old, reason); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return balance, nil
}
