package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rsinghcodes/banking_system/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories into a provider.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		AuditLogRepo:    newPgxAuditLogRepository(dbPool),
	}
}
