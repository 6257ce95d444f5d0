package repositories

import "context"

// UsageRepository records quota consumption after a request is admitted.
// Both writes are single atomic increments at the storage layer; there is
// deliberately no transaction tying them together (best-effort accounting).
type UsageRepository interface {
	// RecordKeyUse stamps the key's last_used_at and increments its
	// cumulative call counter.
	RecordKeyUse(ctx context.Context, keyID string) error

	// IncrementAPICalls adds one to the subscription's api_calls_used for
	// the organization. This counter is the enforcement source for the
	// quota gate on subsequent calls and must never be skipped.
	IncrementAPICalls(ctx context.Context, organizationID string) error
}
