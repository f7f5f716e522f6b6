package memory

import (
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
)

// NewRepositoryProvider creates in-memory repositories. Data lives for the life of the process.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo: NewJournalStore(),
		BudgetRepo:  NewBudgetStore(),
	}
}
