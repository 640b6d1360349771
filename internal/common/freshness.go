package common

import "time"

// Freshness TTLs for cached provider data
const (
	FreshnessPrices     = 24 * time.Hour
	FreshnessStatements = 7 * 24 * time.Hour // annual statements move slowly
	FreshnessDividends  = 7 * 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
