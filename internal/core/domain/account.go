package domain

import (
	"github.com/shopspring/decimal"
)

// Reserved account names. These two accounts always exist and can never be
// deactivated; collaborators identify them by name.
const (
	OperatingCashAccountName = "Caixa Loja"
	VaultAccountName         = "Cofre"
)

// Account represents a monetary bucket: a bank account or a physical cash drawer.
// Balance is a materialized cache of the ledger; the transaction repository is
// its only writer, always inside the same database transaction as the ledger row.
type Account struct {
	AccountID string
	Name      string
	BankRef   string // optional routing metadata for bank accounts
	Balance   decimal.Decimal
	IsActive  bool
	AuditFields
}

// IsProtectedAccountName reports whether the name belongs to one of the
// reserved accounts that must always exist.
func IsProtectedAccountName(name string) bool {
	return name == OperatingCashAccountName || name == VaultAccountName
}
