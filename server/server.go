package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/missiondax-platform/ledger_api/actions"
	"gitlab.com/missiondax-platform/ledger_api/config"
	"gitlab.com/missiondax-platform/ledger_api/crons"
	"gitlab.com/missiondax-platform/ledger_api/net/manager"
	"gitlab.com/missiondax-platform/ledger_api/queries"
	"gitlab.com/missiondax-platform/ledger_api/service"
	"gitlab.com/missiondax-platform/ledger_api/service/payments/payrail"
)

// Server interface
type Server interface {
	Listen()
}

type server struct {
	config  config.Config
	actions *actions.Actions
	service *service.Service
	dm      manager.DataManager
	ctx     context.Context
	close   context.CancelFunc
	HTTP    *http.Server
}

// NewServer wires the repo, the event manager, the ledger service and the
// http actions together
func NewServer(cfg config.Config) Server {
	ctx, cancel := context.WithCancel(context.Background())

	repo := queries.Init(cfg.DatabaseCluster)
	dm := manager.NewDataManager(ctx, cfg.Kafka)
	rail := payrail.Init(cfg.Payouts.RailURL, cfg.Payouts.RailAPIKey)

	ledger := service.NewService(ctx, cfg, repo, dm, rail)
	ledger.Start()

	crons.Start(cfg.Crons, ledger)

	return &server{
		config:  cfg,
		actions: actions.NewActions(cfg, ledger),
		service: ledger,
		dm:      dm,
		ctx:     ctx,
		close:   cancel,
	}
}

// Listen starts the http server and blocks until a shutdown signal
func (srv *server) Listen() {
	router := srv.setupRouter()
	srv.HTTP = &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.config.Server.API.Port),
		Handler: router,
	}

	go func() {
		log.Info().
			Str("section", "server").
			Int("port", srv.config.Server.API.Port).
			Msg("Listening for requests")
		if err := srv.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Str("section", "server").Msg("Unable to start http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Str("section", "server").Msg("Shutting down")
	crons.Close()
	srv.dm.Close()
	srv.close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.HTTP.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Str("section", "server").Msg("Forced shutdown")
	}
}
