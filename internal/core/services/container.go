package services

import (
	portsrepo "github.com/sapataria/caixa_backend/internal/core/ports/repositories"
	portssvc "github.com/sapataria/caixa_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo, repos.AccountRepo)
	container.Transfer = NewTransferService(repos.TransactionRepo, repos.AccountRepo)
	container.CashSession = NewCashSessionService(repos.CashSessionRepo, repos.TransactionRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.TransactionRepo, repos.AccountRepo)

	return container
}
