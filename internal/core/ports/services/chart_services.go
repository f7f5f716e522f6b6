package services

import "github.com/SscSPs/ledgerbook/internal/core/domain"

// ChartOfAccounts is the single source of account categories and normal balances.
// Every component that needs category information resolves codes through it.
type ChartOfAccounts interface {
	// Resolve returns the descriptor for code, or an *apperrors.UnknownAccountError.
	Resolve(code string) (domain.AccountDescriptor, error)

	// Accounts lists every registered account ordered by code.
	Accounts() []domain.AccountDescriptor
}
