package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cryptopoly/internal/app/admin"
	"cryptopoly/internal/game"
)

type AdminHandlers struct {
	svc         *admin.Service
	genesisMint uint64
}

func NewAdminHandlers(svc *admin.Service, genesisMint uint64) *AdminHandlers {
	return &AdminHandlers{svc: svc, genesisMint: genesisMint}
}

func propertyIDParam(r *http.Request) (uint8, bool) {
	raw := chi.URLParam(r, "propertyID")
	id, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(id), true
}

func (h *AdminHandlers) InitGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			GenesisMint uint64 `json:"genesis_mint,omitempty"`
		}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
				return
			}
		}
		mint := body.GenesisMint
		if mint == 0 {
			mint = h.genesisMint
		}
		resp, err := h.svc.InitGame(mint)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AdminHandlers) GameState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.GameState()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AdminHandlers) CreateProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.CreatePropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.CreateProperty(req); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) UpdateProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := propertyIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_property_id")
			return
		}
		var req admin.UpdatePropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.UpdateProperty(id, req); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) UpdateGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.UpdateGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.UpdateGame(req); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) Grant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Address    string `json:"address"`
			PropertyID uint8  `json:"property_id"`
			Slots      uint16 `json:"slots"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.Grant(game.Address(body.Address), body.PropertyID, body.Slots); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) Revoke() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Address    string `json:"address"`
			PropertyID uint8  `json:"property_id"`
			Slots      uint16 `json:"slots"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.Revoke(game.Address(body.Address), body.PropertyID, body.Slots); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) GrantShield() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Address    string `json:"address"`
			PropertyID uint8  `json:"property_id"`
			Hours      uint16 `json:"hours"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.GrantShield(game.Address(body.Address), body.PropertyID, body.Hours); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) ClearSetCooldown() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Address string `json:"address"`
			SetID   uint8  `json:"set_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.ClearSetCooldown(game.Address(body.Address), body.SetID); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) ClearStealCooldown() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Address    string `json:"address"`
			PropertyID uint8  `json:"property_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.ClearStealCooldown(game.Address(body.Address), body.PropertyID); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) SetPaused() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Paused bool `json:"paused"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.SetPaused(body.Paused); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"paused": body.Paused})
	}
}

func (h *AdminHandlers) EmergencyWithdraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Destination string `json:"destination"`
			Amount      uint64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.EmergencyWithdraw(game.Address(body.Destination), body.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) TransferAuthority() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			NewAuthority string `json:"new_authority"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.TransferAuthority(game.Address(body.NewAuthority)); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) Fund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Address string `json:"address"`
			Amount  uint64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.Fund(game.Address(body.Address), body.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) FundPool() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount uint64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.FundPool(body.Amount); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) ForceClose() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Address string `json:"address"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.svc.ForceClose(game.Address(body.Address)); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}
