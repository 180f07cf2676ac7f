package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/clutchcall/ledger-platform/internal/ledger-service/model"
)

// History é o registro ordenado de todos os tickets já colocados,
// serializado como um único array JSON sob uma chave do KV.
// Ordem: mais recente primeiro (Append insere na cabeça).
//
// Falhas de persistência nunca sobem ao chamador: leitura ruim degrada
// para histórico vazio, escrita ruim é logada e o resultado em memória
// é devolvido mesmo assim.
type History struct {
	kv  KV
	key string
	log *zap.Logger
}

func NewHistory(kv KV, key string, log *zap.Logger) *History {
	return &History{kv: kv, key: key, log: log}
}

// Load desserializa o histórico; chave ausente, JSON inválido ou
// valor que não é array viram lista vazia
func (h *History) Load(ctx context.Context) []model.BetTicket {
	raw, ok, err := h.kv.Get(ctx, h.key)
	if err != nil {
		h.log.Warn("history load", zap.Error(err))
		return []model.BetTicket{}
	}
	if !ok {
		return []model.BetTicket{}
	}

	var tickets []model.BetTicket
	if err := json.Unmarshal([]byte(raw), &tickets); err != nil {
		h.log.Warn("history parse", zap.Error(err))
		return []model.BetTicket{}
	}
	if tickets == nil {
		return []model.BetTicket{}
	}
	return tickets
}

// Append insere o ticket na cabeça da lista, persiste e devolve a lista nova
func (h *History) Append(ctx context.Context, ticket model.BetTicket) []model.BetTicket {
	updated := append([]model.BetTicket{ticket}, h.Load(ctx)...)
	h.save(ctx, updated)
	return updated
}

// SetStatus troca só o campo status do ticket com o id dado.
// Id desconhecido é no-op silencioso: devolve a lista inalterada.
func (h *History) SetStatus(ctx context.Context, ticketID string, status model.TicketStatus) []model.BetTicket {
	tickets := h.Load(ctx)
	changed := false
	for i := range tickets {
		if tickets[i].ID == ticketID {
			tickets[i].Status = status
			changed = true
			break
		}
	}
	if changed {
		h.save(ctx, tickets)
	}
	return tickets
}

// Remove filtra o ticket com o id dado, persiste e devolve o resultado
func (h *History) Remove(ctx context.Context, ticketID string) []model.BetTicket {
	tickets := h.Load(ctx)
	updated := make([]model.BetTicket, 0, len(tickets))
	for _, t := range tickets {
		if t.ID != ticketID {
			updated = append(updated, t)
		}
	}
	h.save(ctx, updated)
	return updated
}

// Clear apaga a chave inteira do histórico
func (h *History) Clear(ctx context.Context) {
	if err := h.kv.Del(ctx, h.key); err != nil {
		h.log.Warn("history clear", zap.Error(err))
	}
}

// save serializa e grava best-effort; erro é engolido
func (h *History) save(ctx context.Context, tickets []model.BetTicket) {
	b, err := json.Marshal(tickets)
	if err != nil {
		h.log.Warn("history marshal", zap.Error(err))
		return
	}
	if err := h.kv.Set(ctx, h.key, string(b)); err != nil {
		h.log.Warn("history save", zap.Error(err))
	}
}
