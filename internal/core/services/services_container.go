package services

import (
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo, options...),
		Ledger:    NewLedgerService(repos.AccountRepo, repos.JournalEntryRepo, repos.Transactor, options...),
		Reporting: NewReportingService(repos.AccountRepo, repos.JournalEntryRepo, options...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)
