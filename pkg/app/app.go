package app

import (
	"log/slog"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/exchange"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/amirasaad/finledger/pkg/repository"
	"github.com/amirasaad/finledger/pkg/service/auth"
	"github.com/amirasaad/finledger/pkg/service/ledger"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Store        repository.RecordStore
	Exchange     *exchange.Service
	ChainSource  provider.ChainSource
	Network      bitcoin.Network
	RateFetchers []provider.RateFetcher
	Logger       *slog.Logger
	// Close releases connections opened while building Deps.
	Close func() error
}

type App struct {
	Deps          *Deps
	Config        *config.App
	AuthService   *auth.Service
	LedgerService *ledger.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.AuthService = auth.New(cfg.Auth.Jwt, deps.Logger)
	var opts []ledger.Option
	if deps.Network != "" {
		opts = append(opts, ledger.WithNetwork(deps.Network))
	}
	app.LedgerService = ledger.New(deps.Store, deps.Exchange, deps.ChainSource, deps.Logger, opts...)
	return app
}
