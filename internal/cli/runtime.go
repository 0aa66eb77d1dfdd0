package cli

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_approvals/internal/adapters/database/memory"
	"github.com/SscSPs/expense_approvals/internal/adapters/database/pgsql"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/core/services"
	"github.com/SscSPs/expense_approvals/internal/platform/config"
	"github.com/SscSPs/expense_approvals/pkg/database"
)

// runtime is what a command needs from the environment.
type runtime struct {
	repos    portsrepo.RepositoryProvider
	services *portssvc.ServiceContainer
	close    func()
}

// openRuntime connects to the configured storage. Replaced in tests.
var openRuntime = func(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, err
		}
		repos := pgsql.NewRepositoryProvider(pool)
		// Commands work offline: conversions read stored rates only.
		rates := pgsql.NewPgxExchangeRateRepository(pool)
		return &runtime{
			repos:    repos,
			services: services.NewServiceContainer(cfg, repos, rates),
			close:    func() { database.ClosePgxPool(pool) },
		}, nil
	default:
		repos, store := memory.NewRepositoryProvider()
		return newRuntime(cfg, repos, store), nil
	}
}

func newRuntime(cfg *config.Config, repos portsrepo.RepositoryProvider, rates portsrepo.RateSource) *runtime {
	return &runtime{
		repos:    repos,
		services: services.NewServiceContainer(cfg, repos, rates),
		close:    func() {},
	}
}
