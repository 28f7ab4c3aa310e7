package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cryptopoly/internal/app/play"
	"cryptopoly/internal/game"
	"cryptopoly/internal/index"
	"cryptopoly/internal/state"
)

type PublicHandlers struct {
	svc *play.Service
	st  *state.Store
	idx *index.Store
}

func NewPublicHandlers(svc *play.Service, st *state.Store, idx *index.Store) *PublicHandlers {
	return &PublicHandlers{svc: svc, st: st, idx: idx}
}

func (h *PublicHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var slot uint64
		_ = h.st.View(func(txn *state.Txn) error {
			slot = txn.Slot()
			return nil
		})
		status := map[string]any{"status": "ok", "slot": slot}
		if h.idx != nil {
			if err := h.idx.Ping(r.Context()); err != nil {
				status["index"] = "unreachable"
			} else {
				status["index"] = "ok"
			}
		}
		_ = json.NewEncoder(w).Encode(status)
	}
}

func (h *PublicHandlers) Properties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Properties()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PublicHandlers) Player() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr := game.Address(chi.URLParam(r, "address"))
		if addr == "" {
			WriteHTTPError(w, http.StatusBadRequest, "missing_address")
			return
		}
		resp, err := h.svc.State(addr)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Events serves the query side of the event index. Without a configured
// index DSN the endpoint is unavailable rather than silently empty.
func (h *PublicHandlers) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.idx == nil {
			WriteHTTPError(w, http.StatusServiceUnavailable, "index_disabled")
			return
		}
		limit := ParseLimit(r)
		var (
			rows []index.Row
			err  error
		)
		if player := r.URL.Query().Get("player"); player != "" {
			rows, err = h.idx.ListByPlayer(r.Context(), game.Address(player), limit)
		} else {
			rows, err = h.idx.ListRecent(r.Context(), limit)
		}
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "index_query_failed")
			return
		}
		if rows == nil {
			rows = []index.Row{}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"events": rows})
	}
}
