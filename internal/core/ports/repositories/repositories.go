package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	JournalEntryRepo JournalEntryRepositoryFacade
	Transactor       LedgerTransactor
}
