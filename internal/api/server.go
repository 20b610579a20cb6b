// Package api is the thin reference HTTP binding demonstrating the
// boundary operations external collaborators (crawler, query layer, LLM
// worker, P2P transport) are expected to drive against the core. It is not
// a general search/crawl/MCP API — those remain external collaborators.
package api

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/andrey/p2psearch-ledger/docs"
	"github.com/andrey/p2psearch-ledger/internal/api/handlers"
	"github.com/andrey/p2psearch-ledger/internal/api/middleware"
	"github.com/andrey/p2psearch-ledger/internal/domain/canon"
	"github.com/andrey/p2psearch-ledger/internal/infra/config"
	"github.com/andrey/p2psearch-ledger/internal/services/ledger"
	"github.com/andrey/p2psearch-ledger/internal/services/proof"
	"github.com/andrey/p2psearch-ledger/internal/services/scheduler"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Server wires the core services to HTTP handlers.
type Server struct {
	ledgerSvc ledger.Service
	proofSvc  proof.Builder
	scheduler *scheduler.Scheduler
	keyPair   canon.KeyPair
	clock     handlers.Clock
	logger    lgr.L
	config    *config.Config
}

// NewServer builds the reference HTTP server.
func NewServer(
	ledgerSvc ledger.Service,
	proofSvc proof.Builder,
	sched *scheduler.Scheduler,
	keyPair canon.KeyPair,
	clock handlers.Clock,
	logger lgr.L,
	cfg *config.Config,
) *Server {
	return &Server{
		ledgerSvc: ledgerSvc,
		proofSvc:  proofSvc,
		scheduler: sched,
		keyPair:   keyPair,
		clock:     clock,
		logger:    logger,
		config:    cfg,
	}
}

// SetupRoutes configures all HTTP routes and middleware.
func (s *Server) SetupRoutes() http.Handler {
	ledgerHandler := handlers.NewLedgerHandler(s.ledgerSvc, s.keyPair, s.clock, s.logger)
	proofHandler := handlers.NewProofHandler(s.proofSvc, s.config.Signing.PeerID, s.config.Proof.SampleSize, s.logger)
	schedulerHandler := handlers.NewSchedulerHandler(s.scheduler, s.clock, s.logger)
	healthHandler := handlers.NewHealthHandler(s.logger, map[string]handlers.HealthCheck{
		"ledger":    s.checkLedger,
		"scheduler": s.checkScheduler,
		"proof":     s.checkProof,
	})

	router := routegroup.New(http.NewServeMux())
	router.Use(rest.RealIP)
	router.Use(rest.Trace)
	router.Use(rest.SizeLimit(1024 * 1024))
	router.Use(middleware.Logging(s.logger))
	router.Use(middleware.Recovery(s.logger))
	router.Use(rest.AppInfo("p2psearch-ledger", "andrey", "1.0.0"))
	router.Use(rest.Ping)

	router.HandleFunc("GET /health", healthHandler.HandleHealth)
	router.HandleFunc("GET /swagger/*", httpSwagger.Handler())

	router.Group().Mount("/api").Route(func(api *routegroup.Bundle) {
		api.Group().Mount("/ledger").Route(func(ledgerRouter *routegroup.Bundle) {
			ledgerRouter.HandleFunc("POST /actions", ledgerHandler.HandleRecordAction)
			ledgerRouter.HandleFunc("POST /spend", ledgerHandler.HandleSpend)
			ledgerRouter.HandleFunc("GET /allowance", ledgerHandler.HandleAllowance)
			ledgerRouter.HandleFunc("GET /breakdown", ledgerHandler.HandleBreakdown)
		})

		api.Group().Mount("/proof").Route(func(proofRouter *routegroup.Bundle) {
			proofRouter.HandleFunc("GET /", proofHandler.HandleGetProof)
			proofRouter.HandleFunc("POST /verify", proofHandler.HandleVerifyProof)
		})

		api.Group().Mount("/scheduler").Route(func(schedRouter *routegroup.Bundle) {
			schedRouter.HandleFunc("POST /pick", schedulerHandler.HandlePick)
		})
	})

	return router
}

// Start runs the HTTP server with the same fixed security timeouts teacher
// services use.
func (s *Server) Start() error {
	handler := s.SetupRoutes()
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Logf("INFO starting server on %s", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) checkLedger() error {
	if s.ledgerSvc == nil {
		return fmt.Errorf("ledger service not initialized")
	}
	return nil
}

func (s *Server) checkScheduler() error {
	if s.scheduler == nil {
		return fmt.Errorf("scheduler not initialized")
	}
	return nil
}

func (s *Server) checkProof() error {
	if s.proofSvc == nil {
		return fmt.Errorf("proof builder not initialized")
	}
	return nil
}
