// Package timezone keeps the application clock in one place.
//
// Call Init once at start-up with the loaded configuration. Until then every
// helper falls back to UTC.
//
//	now := timezone.Now()
//	start, err := timezone.Parse(time.RFC3339, "2024-01-01T10:00:00Z")
//	label := timezone.Format(start, time.RFC3339)
//
// The zone comes from APP_TIMEZONE and must be an IANA name such as "UTC" or
// "Asia/Jakarta".
package timezone
