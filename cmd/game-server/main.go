package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptopoly/internal/app/admin"
	"cryptopoly/internal/app/play"
	"cryptopoly/internal/config"
	"cryptopoly/internal/events"
	"cryptopoly/internal/index"
	"cryptopoly/internal/logging"
	"cryptopoly/internal/state"
	httptransport "cryptopoly/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	appCfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(appCfg.Log); err != nil {
		panic(err)
	}
	cfg := appCfg.Server

	db, err := state.NewLevelDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open db failed")
	}
	st, err := state.NewStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("state init failed")
	}
	defer st.Close()

	em := events.NewEmitter()
	em.SubscribeAll(func(ev events.Event) {
		log.Info().
			Str("event_id", ev.ID).
			Str("tx_id", ev.TxID).
			Uint64("slot", ev.Slot).
			Str("type", string(ev.Game.Type)).
			Str("player", string(ev.Game.Player)).
			Uint64("amount", ev.Game.Amount).
			Msg("game event")
	})

	var idx *index.Store
	if cfg.IndexPostgresDSN != "" {
		idx, err = index.New(context.Background(), cfg.IndexPostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("event index init failed")
		}
		defer idx.Close()
		em.SubscribeAll(idx.Subscriber(func(err error) {
			log.Error().Err(err).Msg("event index insert failed")
		}))
		log.Info().Msg("event index enabled")
	}

	now := func() int64 { return time.Now().Unix() }
	playSvc := play.NewService(st, em, cfg.JoinGrant, now)
	adminSvc := admin.NewService(st, em, now)

	r := httptransport.NewRouter(st, cfg, playSvc, adminSvc, idx)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}
