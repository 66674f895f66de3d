package services

import (
	"log/slog"

	"github.com/goldify/goldify_backend/internal/core/ports"
	portsrepo "github.com/goldify/goldify_backend/internal/core/ports/repositories"
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/platform/config"
	"github.com/goldify/goldify_backend/internal/platform/scheduler"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. It also returns the rate engine's background tasks so the
// caller can hand them to a scheduler.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	spot ports.SpotPriceFetcher,
	exchange ports.ExchangeRateFetcher,
	logger *slog.Logger,
) (*portssvc.ServiceContainer, []scheduler.Task) {
	container := &portssvc.ServiceContainer{}

	goldRate := NewGoldRateService(spot, exchange, repos.GoldRateRepo, logger, GoldRateOptions{
		RealtimeCacheTTL:        cfg.RealtimeCacheTTL,
		ExchangeCacheTTL:        cfg.ExchangeCacheTTL,
		RealtimeRefreshInterval: cfg.RealtimeRefreshInterval,
		SnapshotSaveInterval:    cfg.SnapshotSaveInterval,
	})
	container.GoldRate = goldRate

	container.CustomRate = NewCustomRateService(repos.CustomRateRepo)

	// The ledger checks the owner's custom rate before every append.
	container.ShopRecord = NewShopRecordService(repos.ShopRecordRepo, container.CustomRate)

	container.Sale = NewSaleService(repos.SaleRepo)

	return container, goldRate.Tasks()
}
