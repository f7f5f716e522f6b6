package dto

import (
	"time"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

// ParseDate parses a calendar date in domain.DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date", "dates must be formatted as YYYY-MM-DD").WithCause(err)
	}
	return t, nil
}

// ParseRange parses an inclusive from/to pair.
func ParseRange(from, to string) (domain.DateRange, error) {
	start, err := ParseDate(from)
	if err != nil {
		return domain.DateRange{}, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return domain.DateRange{}, err
	}
	r, err := domain.NewDateRange(start, end)
	if err != nil {
		return domain.DateRange{}, apperrors.NewValidationError("to", "range end must not be before start").WithCause(err)
	}
	return r, nil
}

// FormatDate renders a calendar date in domain.DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}
