package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/platform/lock"
	"github.com/SscSPs/ledgerbook/internal/platform/metrics"
	"github.com/SscSPs/ledgerbook/internal/utils/accounting"
)

var (
	ErrJournalNoLines       = errors.New("journal entry must have at least one line")
	ErrJournalDuplicate     = errors.New("an active journal entry already exists for this transaction")
	ErrJournalNotPosted     = errors.New("only POSTED journal entries can be reversed")
	ErrJournalReversal      = errors.New("a reversal entry cannot be reversed")
	ErrJournalIllegalStatus = errors.New("illegal journal status transition")
)

const entryNumberDateLayout = "20060102"

// journalService owns the DRAFT -> POSTED -> REVERSED lifecycle of journal entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	chart       portssvc.ChartOfAccounts
	locker      lock.Locker
	policy      accounting.Policy
	now         func() time.Time
}

// JournalServiceOption configures optional dependencies of the journal service.
type JournalServiceOption func(*journalService)

// WithJournalLocker sets the lock used to serialize writes per source transaction.
func WithJournalLocker(l lock.Locker) JournalServiceOption {
	return func(s *journalService) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithJournalPolicy sets the amount scale and balancing tolerance.
func WithJournalPolicy(p accounting.Policy) JournalServiceOption {
	return func(s *journalService) {
		s.policy = p
	}
}

// WithJournalClock overrides the clock used for entry numbers, audit fields and reversal dates.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, chart portssvc.ChartOfAccounts, opts ...JournalServiceOption) portssvc.JournalSvcFacade {
	s := &journalService{
		journalRepo: journalRepo,
		chart:       chart,
		locker:      lock.NewKeyedMutex(),
		policy:      accounting.DefaultPolicy(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// TransactionLockKey is the serialization key for writes against one source transaction.
func TransactionLockKey(txType domain.TransactionType, transactionID string) string {
	return fmt.Sprintf("journal:%s:%s", txType, transactionID)
}

// withTransactionLock runs fn under the per-transaction lock. Entries without a
// transaction id have no uniqueness slot to protect and run unlocked.
func (s *journalService) withTransactionLock(ctx context.Context, txType domain.TransactionType, transactionID string, fn func(context.Context) error) error {
	if transactionID == "" {
		return fn(ctx)
	}
	return s.locker.WithLock(ctx, TransactionLockKey(txType, transactionID), fn)
}

// validateNewEntry checks the request and returns the normalized lines.
// Nothing is persisted on failure.
func (s *journalService) validateNewEntry(req domain.NewJournalEntry) ([]domain.JournalEntryLine, domain.JournalStatus, error) {
	if !req.TransactionType.Valid() {
		return nil, "", apperrors.NewValidationError("transaction_type", fmt.Sprintf("unknown transaction type %q", req.TransactionType))
	}
	if req.TransactionType.RequiresTransactionID() && req.TransactionID == "" {
		return nil, "", apperrors.NewValidationError("transaction_id", fmt.Sprintf("transaction id is required for %s entries", req.TransactionType))
	}
	if req.EntryDate.IsZero() {
		return nil, "", apperrors.NewValidationError("entry_date", "entry date is required")
	}

	status := req.Status
	if status == "" {
		status = domain.Posted
	}
	if status != domain.Draft && status != domain.Posted {
		return nil, "", apperrors.NewValidationError("status", fmt.Sprintf("new entries must be DRAFT or POSTED, got %q", status))
	}

	if len(req.Lines) == 0 {
		return nil, "", apperrors.NewValidationError("lines", ErrJournalNoLines.Error()).WithCause(ErrJournalNoLines)
	}

	lines := make([]domain.JournalEntryLine, len(req.Lines))
	for i, l := range req.Lines {
		if l.Debit.IsNegative() {
			return nil, "", apperrors.NewLineValidationError(i, "debit", "amount must not be negative").WithAmount(l.Debit)
		}
		if l.Credit.IsNegative() {
			return nil, "", apperrors.NewLineValidationError(i, "credit", "amount must not be negative").WithAmount(l.Credit)
		}
		if l.Debit.IsZero() == l.Credit.IsZero() {
			return nil, "", apperrors.NewLineValidationError(i, "amount", "exactly one of debit and credit must be nonzero")
		}
		if !s.policy.FitsScale(l.Amount()) {
			return nil, "", apperrors.NewLineValidationError(i, "amount", fmt.Sprintf("amount has more than %d fractional digits", s.policy.Scale)).WithAmount(l.Amount())
		}
		if _, err := s.chart.Resolve(l.AccountCode); err != nil {
			return nil, "", apperrors.NewLineValidationError(i, "account_code", err.Error()).WithCause(err)
		}
		l.LineOrder = i + 1
		lines[i] = l
	}

	if err := s.policy.ValidateEntryBalance(lines); err != nil {
		return nil, "", err
	}
	return lines, status, nil
}

func (s *journalService) nextEntryNumber(ctx context.Context, now time.Time) (string, error) {
	seq, err := s.journalRepo.NextEntrySequence(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to allocate entry number: %w", err)
	}
	return fmt.Sprintf("JE-%s-%08d", now.UTC().Format(entryNumberDateLayout), seq), nil
}

// CreateEntry validates and persists a new journal entry with its lines.
func (s *journalService) CreateEntry(ctx context.Context, req domain.NewJournalEntry) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("transaction_type", string(req.TransactionType)),
		slog.String("transaction_id", req.TransactionID),
	)

	lines, status, err := s.validateNewEntry(req)
	if err != nil {
		var unbalanced *apperrors.UnbalancedEntryError
		if errors.As(err, &unbalanced) {
			metrics.EntryRejected("unbalanced")
		} else {
			metrics.EntryRejected("validation")
		}
		logger.Warn("Journal entry rejected", slog.String("error", err.Error()))
		return nil, err
	}

	var created *domain.JournalEntry
	err = s.withTransactionLock(ctx, req.TransactionType, req.TransactionID, func(ctx context.Context) error {
		if req.TransactionID != "" {
			existing, findErr := s.journalRepo.FindActiveEntryByTransaction(ctx, req.TransactionType, req.TransactionID)
			if findErr == nil {
				return fmt.Errorf("%w: %w (entry %s)", apperrors.ErrConflict, ErrJournalDuplicate, existing.EntryNumber)
			}
			if !errors.Is(findErr, apperrors.ErrNotFound) {
				return fmt.Errorf("failed to check for existing entry: %w", findErr)
			}
		}

		now := s.now()
		entryNumber, numErr := s.nextEntryNumber(ctx, now)
		if numErr != nil {
			return numErr
		}

		entryID := uuid.NewString()
		for i := range lines {
			lines[i].LineID = uuid.NewString()
			lines[i].EntryID = entryID
		}
		entry := domain.JournalEntry{
			EntryID:         entryID,
			EntryNumber:     entryNumber,
			EntryDate:       domain.DateOnly(req.EntryDate),
			Description:     req.Description,
			TransactionType: req.TransactionType,
			TransactionID:   req.TransactionID,
			Status:          status,
			Lines:           lines,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     req.CreatedBy,
				LastUpdatedAt: now,
				LastUpdatedBy: req.CreatedBy,
			},
		}
		if saveErr := s.journalRepo.SaveEntry(ctx, entry); saveErr != nil {
			return fmt.Errorf("failed to save journal entry: %w", saveErr)
		}
		created = &entry
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			metrics.EntryRejected("conflict")
			logger.Warn("Duplicate journal entry rejected", slog.String("error", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to create journal entry")
		}
		return nil, err
	}

	metrics.EntryCreated(string(created.TransactionType), string(created.Status))
	logger.Info("Journal entry created",
		slog.String("entry_id", created.EntryID),
		slog.String("entry_number", created.EntryNumber),
		slog.String("status", string(created.Status)))
	return created, nil
}

// PostEntry moves a DRAFT entry to POSTED. Posting an already POSTED entry is a no-op.
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.String("entry_id", entryID))

	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.Posted {
		logger.Debug("Journal entry already posted")
		return entry, nil
	}
	if !domain.CanTransition(entry.Status, domain.Posted) {
		return nil, fmt.Errorf("%w: %w: %s -> %s", apperrors.ErrConflict, ErrJournalIllegalStatus, entry.Status, domain.Posted)
	}

	err = s.withTransactionLock(ctx, entry.TransactionType, entry.TransactionID, func(ctx context.Context) error {
		now := s.now()
		if updErr := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.Draft, domain.Posted, userID, now); updErr != nil {
			return updErr
		}
		entry.Status = domain.Posted
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A concurrent caller may have posted it first.
			current, getErr := s.GetEntry(ctx, entryID)
			if getErr == nil && current.Status == domain.Posted {
				return current, nil
			}
		}
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}

	metrics.EntryCreated(string(entry.TransactionType), string(domain.Posted))
	logger.Info("Journal entry posted", slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// ReverseEntry creates the offsetting entry for a POSTED entry and marks the original REVERSED.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.String("entry_id", entryID))

	original, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := validateReversible(original); err != nil {
		logger.Warn("Journal entry cannot be reversed", slog.String("status", string(original.Status)), slog.String("error", err.Error()))
		return nil, err
	}

	var reversal *domain.JournalEntry
	err = s.withTransactionLock(ctx, original.TransactionType, original.TransactionID, func(ctx context.Context) error {
		// Re-read under the lock so a concurrent reversal is seen.
		current, findErr := s.journalRepo.FindEntryByID(ctx, entryID)
		if findErr != nil {
			return findErr
		}
		if vErr := validateReversible(current); vErr != nil {
			return vErr
		}

		now := s.now()
		entryNumber, numErr := s.nextEntryNumber(ctx, now)
		if numErr != nil {
			return numErr
		}

		reversalID := uuid.NewString()
		lines := make([]domain.JournalEntryLine, len(current.Lines))
		for i, l := range current.Lines {
			swapped := l.Swapped()
			swapped.LineID = uuid.NewString()
			swapped.EntryID = reversalID
			lines[i] = swapped
		}

		originalID := current.EntryID
		r := domain.JournalEntry{
			EntryID:           reversalID,
			EntryNumber:       entryNumber,
			EntryDate:         domain.DateOnly(now.UTC()),
			Description:       fmt.Sprintf("Reversal of %s: %s", current.EntryNumber, current.Description),
			TransactionType:   current.TransactionType,
			TransactionID:     current.TransactionID,
			Status:            domain.Posted,
			ReversalOfEntryID: &originalID,
			Lines:             lines,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if saveErr := s.journalRepo.SaveReversal(ctx, r, originalID); saveErr != nil {
			return fmt.Errorf("failed to save reversal: %w", saveErr)
		}
		reversal = &r
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Journal entry reversal rejected", slog.String("error", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	metrics.EntryReversed()
	logger.Info("Journal entry reversed",
		slog.String("original_entry_number", original.EntryNumber),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("reversal_entry_number", reversal.EntryNumber))
	return reversal, nil
}

func validateReversible(e *domain.JournalEntry) error {
	if e.IsReversal() {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrJournalReversal)
	}
	if !domain.CanTransition(e.Status, domain.Reversed) {
		return fmt.Errorf("%w: %w (status %s)", apperrors.ErrConflict, ErrJournalNotPosted, e.Status)
	}
	return nil
}

// GetEntry retrieves a journal entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to get journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to get journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntriesByTransaction lists every entry recorded for a source transaction.
func (s *journalService) ListEntriesByTransaction(ctx context.Context, txType domain.TransactionType, transactionID string) ([]domain.JournalEntry, error) {
	if !txType.Valid() {
		return nil, apperrors.NewValidationError("transaction_type", fmt.Sprintf("unknown transaction type %q", txType))
	}
	if transactionID == "" {
		return nil, apperrors.NewValidationError("transaction_id", "transaction id is required")
	}
	entries, err := s.journalRepo.ListEntriesByTransaction(ctx, txType, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries by transaction")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}
