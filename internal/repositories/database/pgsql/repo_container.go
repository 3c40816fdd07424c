package pgsql

import (
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalEntryRepo: newPgxJournalEntryRepository(dbPool),
		Transactor:       newPgxLedgerTransactor(dbPool),
	}
}
