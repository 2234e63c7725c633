package pgsql

import (
	portsrepo "github.com/BekhzodS/china_shop_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RateRepo:  newPgxRateRepository(pool),
		CartRepo:  newPgxCartRepository(pool),
		OrderRepo: newPgxOrderRepository(pool),
		CargoRepo: newPgxCargoRepository(pool),
		UserRepo:  newPgxUserRepository(pool),
	}
}
