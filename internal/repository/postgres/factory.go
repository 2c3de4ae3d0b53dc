package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "ratewallet/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Balances  repo.Balances
	Exchanges repo.Exchanges
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Balances:  &balancesRepo{pool},
		Exchanges: &exchangesRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
