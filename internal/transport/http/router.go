package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"cryptopoly/internal/app/admin"
	"cryptopoly/internal/app/play"
	"cryptopoly/internal/config"
	"cryptopoly/internal/index"
	"cryptopoly/internal/state"
)

func NewRouter(st *state.Store, cfg config.ServerConfig, playSvc *play.Service, adminSvc *admin.Service, idx *index.Store) *chi.Mux {
	playHandlers := NewPlayHandlers(playSvc)
	publicHandlers := NewPublicHandlers(playSvc, st, idx)
	adminHandlers := NewAdminHandlers(adminSvc, cfg.GenesisMint)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", publicHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Get("/public/properties", publicHandlers.Properties())
		r.Get("/public/players/{address}", publicHandlers.Player())
		r.Get("/public/events", publicHandlers.Events())

		r.Post("/join", playHandlers.Join())

		r.Group(func(r chi.Router) {
			r.Use(PlayerAuthMiddleware(playSvc))
			r.Get("/player/me", playHandlers.Me())
			r.Post("/player/buy", playHandlers.Buy())
			r.Post("/player/shield", playHandlers.Shield())
			r.Post("/player/steal", playHandlers.Steal())
			r.Post("/player/claim", playHandlers.Claim())
			r.Post("/player/sell", playHandlers.Sell())
			r.Post("/player/close", playHandlers.Close())
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Post("/admin/init", adminHandlers.InitGame())
			r.Get("/admin/state", adminHandlers.GameState())
			r.Post("/admin/properties", adminHandlers.CreateProperty())
			r.Patch("/admin/properties/{propertyID}", adminHandlers.UpdateProperty())
			r.Patch("/admin/game", adminHandlers.UpdateGame())
			r.Post("/admin/grant", adminHandlers.Grant())
			r.Post("/admin/revoke", adminHandlers.Revoke())
			r.Post("/admin/grant_shield", adminHandlers.GrantShield())
			r.Post("/admin/clear_set_cooldown", adminHandlers.ClearSetCooldown())
			r.Post("/admin/clear_steal_cooldown", adminHandlers.ClearStealCooldown())
			r.Post("/admin/pause", adminHandlers.SetPaused())
			r.Post("/admin/withdraw", adminHandlers.EmergencyWithdraw())
			r.Post("/admin/authority", adminHandlers.TransferAuthority())
			r.Post("/admin/fund", adminHandlers.Fund())
			r.Post("/admin/fund_pool", adminHandlers.FundPool())
			r.Post("/admin/force_close", adminHandlers.ForceClose())
			r.Get("/admin/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
