package pgsql

import (
	portsrepo "github.com/goldify/goldify_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		GoldRateRepo:   newPgxGoldRateRepository(dbPool),
		CustomRateRepo: newPgxCustomRateRepository(dbPool),
		ShopRecordRepo: newPgxShopRecordRepository(dbPool),
		SaleRepo:       newPgxSaleRepository(dbPool),
	}
}
