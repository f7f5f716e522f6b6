package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

const dateFormat = "2006-01-02"

// EncodeLedgerCursor creates a base64 encoded token pointing at the last ledger line of a page.
// The next page starts strictly after this position.
func EncodeLedgerCursor(c domain.LedgerCursor) string {
	return EncodeMultiFieldToken(c.EntryDate.Format(dateFormat), c.EntryNumber, strconv.Itoa(c.LineOrder))
}

// DecodeLedgerCursor parses a token produced by EncodeLedgerCursor.
func DecodeLedgerCursor(token string) (domain.LedgerCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return domain.LedgerCursor{}, err
	}
	if len(parts) != 3 {
		return domain.LedgerCursor{}, fmt.Errorf("invalid pagination token format (expected 3 fields, got %d)", len(parts))
	}

	entryDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return domain.LedgerCursor{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	if parts[1] == "" {
		return domain.LedgerCursor{}, fmt.Errorf("invalid pagination token format (empty entry number)")
	}
	lineOrder, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.LedgerCursor{}, fmt.Errorf("invalid pagination token format (line order parse): %w", err)
	}

	return domain.LedgerCursor{EntryDate: entryDate, EntryNumber: parts[1], LineOrder: lineOrder}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
