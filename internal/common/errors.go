package common

import (
	"errors"
	"fmt"
)

// DataUnavailableError indicates the provider has no record for a ticker or
// a statement section. For peers and indexes this is non-fatal; for the
// primary entity's core statements it aborts the analysis.
type DataUnavailableError struct {
	Ticker  string
	Section string // "income_statement", "balance_sheet", "prices", ...
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("no %s data available for %s", e.Section, e.Ticker)
}

// EntityFetchError wraps a fetch/compute failure for a benchmark or index
// entity. It is isolated per entity and never aborts the primary analysis.
type EntityFetchError struct {
	Ticker string
	Err    error
}

func (e *EntityFetchError) Error() string {
	return fmt.Sprintf("fetch failed for %s: %v", e.Ticker, e.Err)
}

func (e *EntityFetchError) Unwrap() error {
	return e.Err
}

// IsDataUnavailable reports whether err is a DataUnavailableError.
func IsDataUnavailable(err error) bool {
	var due *DataUnavailableError
	return errors.As(err, &due)
}
