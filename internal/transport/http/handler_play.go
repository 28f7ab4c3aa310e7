package httptransport

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"cryptopoly/internal/app/play"
)

type PlayHandlers struct {
	svc *play.Service
}

func NewPlayHandlers(svc *play.Service) *PlayHandlers {
	return &PlayHandlers{svc: svc}
}

func (h *PlayHandlers) Join() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Join()
		if err != nil {
			metricJoinErrors.Add(1)
			writeServiceError(w, err)
			return
		}
		metricJoinTotal.Add(1)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayHandlers) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr, _, _ := PlayerFromContext(r.Context())
		resp, err := h.svc.State(addr)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayHandlers) Buy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PropertyID uint8  `json:"property_id"`
			Slots      uint16 `json:"slots"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		addr, _, _ := PlayerFromContext(r.Context())
		resp, err := h.svc.Buy(addr, body.PropertyID, body.Slots)
		if err != nil {
			metricTxErrors.Add(1)
			writeServiceError(w, err)
			return
		}
		metricTxTotal.Add(1)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayHandlers) Shield() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PropertyID uint8  `json:"property_id"`
			Hours      uint16 `json:"hours"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		addr, _, _ := PlayerFromContext(r.Context())
		resp, err := h.svc.Shield(addr, body.PropertyID, body.Hours)
		if err != nil {
			metricTxErrors.Add(1)
			writeServiceError(w, err)
			return
		}
		metricTxTotal.Add(1)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayHandlers) Steal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PropertyID uint8  `json:"property_id"`
			Randomness string `json:"randomness,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		var seed []byte
		if body.Randomness != "" {
			decoded, err := hex.DecodeString(body.Randomness)
			if err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_randomness")
				return
			}
			seed = decoded
		}
		addr, _, _ := PlayerFromContext(r.Context())
		resp, err := h.svc.Steal(addr, body.PropertyID, seed)
		if err != nil {
			metricTxErrors.Add(1)
			writeServiceError(w, err)
			return
		}
		metricTxTotal.Add(1)
		if resp.Success {
			metricStealSuccessTotal.Add(1)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayHandlers) Claim() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr, _, _ := PlayerFromContext(r.Context())
		resp, err := h.svc.Claim(addr)
		if err != nil {
			metricTxErrors.Add(1)
			writeServiceError(w, err)
			return
		}
		metricTxTotal.Add(1)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayHandlers) Sell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PropertyID uint8  `json:"property_id"`
			Slots      uint16 `json:"slots"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		addr, _, _ := PlayerFromContext(r.Context())
		resp, err := h.svc.Sell(addr, body.PropertyID, body.Slots)
		if err != nil {
			metricTxErrors.Add(1)
			writeServiceError(w, err)
			return
		}
		metricTxTotal.Add(1)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayHandlers) Close() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr, apiKey, _ := PlayerFromContext(r.Context())
		if err := h.svc.Close(addr, apiKey); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}
