// Package limits caps JSON bodies exchanged with the daemon.
package limits

const (
	// JSON caps request and response payloads (1MB).
	JSON = 1 << 20

	// ErrorBody caps how much of a failed response is read for its message (1KB).
	ErrorBody = 1024
)
