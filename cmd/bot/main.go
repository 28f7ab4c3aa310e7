package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"cryptopoly/internal/config"
)

// A smoke-test player: joins, then spends a few rounds buying, shielding,
// stealing, and claiming against a running server.

type joinResponse struct {
	Address string `json:"address"`
	APIKey  string `json:"api_key"`
	Balance uint64 `json:"balance"`
}

type propertyItem struct {
	ID             uint8  `json:"id"`
	AvailableSlots uint16 `json:"available_slots"`
	Price          uint64 `json:"price"`
}

type propertiesResponse struct {
	Items []propertyItem `json:"items"`
}

type playerState struct {
	Balance        uint64 `json:"balance"`
	TotalSlots     uint32 `json:"total_slots"`
	PendingRewards uint64 `json:"pending_rewards"`
}

type client struct {
	base   string
	apiKey string
	http   *http.Client
}

func (c *client) do(method, path string, body, out any) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, err
		}
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal(err)
	}
	c := &client{base: cfg.BaseURL, http: &http.Client{Timeout: 10 * time.Second}}

	if cfg.AdminAPIKey != "" {
		req, _ := http.NewRequest(http.MethodPost, cfg.BaseURL+"/api/admin/init", nil)
		req.Header.Set("X-Admin-Key", cfg.AdminAPIKey)
		if resp, err := c.http.Do(req); err == nil {
			resp.Body.Close()
			log.Printf("admin init: %d", resp.StatusCode)
		}
	}

	var joined joinResponse
	code, err := c.do(http.MethodPost, "/api/join", nil, &joined)
	if err != nil || code != http.StatusOK {
		log.Fatalf("join failed: code=%d err=%v", code, err)
	}
	c.apiKey = joined.APIKey
	log.Printf("joined as %s balance=%d", joined.Address, joined.Balance)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < cfg.Rounds; i++ {
		if err := round(c, rnd); err != nil {
			log.Printf("round %d: %v", i, err)
		}
		time.Sleep(2 * time.Second)
	}

	var me playerState
	if code, err := c.do(http.MethodGet, "/api/player/me", nil, &me); err == nil && code == http.StatusOK {
		log.Printf("done: balance=%d slots=%d pending=%d", me.Balance, me.TotalSlots, me.PendingRewards)
	}
}

func round(c *client, rnd *rand.Rand) error {
	var props propertiesResponse
	code, err := c.do(http.MethodGet, "/api/public/properties", nil, &props)
	if err != nil || code != http.StatusOK {
		return fmt.Errorf("properties: code=%d err=%v", code, err)
	}
	if len(props.Items) == 0 {
		return fmt.Errorf("no properties")
	}

	var me playerState
	if _, err := c.do(http.MethodGet, "/api/player/me", nil, &me); err != nil {
		return err
	}

	target := props.Items[rnd.Intn(len(props.Items))]
	switch rnd.Intn(4) {
	case 0:
		if target.AvailableSlots > 0 && me.Balance >= target.Price {
			code, _ := c.do(http.MethodPost, "/api/player/buy",
				map[string]any{"property_id": target.ID, "slots": 1}, nil)
			log.Printf("buy property=%d: %d", target.ID, code)
		}
	case 1:
		code, _ := c.do(http.MethodPost, "/api/player/shield",
			map[string]any{"property_id": target.ID, "hours": 1 + rnd.Intn(6)}, nil)
		log.Printf("shield property=%d: %d", target.ID, code)
	case 2:
		code, _ := c.do(http.MethodPost, "/api/player/steal",
			map[string]any{"property_id": target.ID}, nil)
		log.Printf("steal property=%d: %d", target.ID, code)
	default:
		if me.PendingRewards > 0 {
			code, _ := c.do(http.MethodPost, "/api/player/claim", nil, nil)
			log.Printf("claim: %d", code)
		}
	}
	return nil
}
