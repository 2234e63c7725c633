package services

import (
	"log/slog"

	portsrepo "github.com/BekhzodS/china_shop_app/internal/core/ports/repositories"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. Collaborator ports (rate feed, product client,
// activity recorder) are injected so tests and workers can swap them.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	feed portssvc.RateFeed,
	products portssvc.ProductProvider,
	activity portssvc.ActivityRecorder,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rate source first: pricing depends on it.
	container.Rate = NewRateSourceService(repos.RateRepo, feed, logger)
	container.Pricing = NewPricingService(container.Rate)

	container.Cart = NewCartService(repos.CartRepo, container.Pricing, products, activity)
	container.Order = NewOrderService(repos.OrderRepo, repos.CartRepo, activity)
	container.Cargo = NewCargoService(repos.CargoRepo, repos.OrderRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	container.Products = products
	container.Activity = activity

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.RateSvcFacade    = (*rateSourceService)(nil)
	_ portssvc.PricingSvcFacade = (*pricingService)(nil)
	_ portssvc.CartSvcFacade    = (*cartService)(nil)
	_ portssvc.OrderSvcFacade   = (*orderService)(nil)
	_ portssvc.CargoSvcFacade   = (*cargoService)(nil)
	_ portssvc.UserSvcFacade    = (*userService)(nil)
)
