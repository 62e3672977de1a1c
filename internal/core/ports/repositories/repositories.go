package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This keeps the service container constructor signature stable as
// repositories are added.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	CashSessionRepo CashSessionRepositoryFacade
	ReportingRepo   ReportingRepository
}
