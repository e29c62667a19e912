package core

import "github.com/google/uuid"

// ErrorKind enumerates the externally observable transaction failure
// modes. A TransactionResult with Success true carries no ErrorKind.
type ErrorKind string

const (
	ErrInvalid            ErrorKind = "INVALID"
	ErrInvalidFormatKind  ErrorKind = "INVALID_FORMAT"
	ErrInvalidNonce       ErrorKind = "INVALID_NONCE"
	ErrInvalidFee         ErrorKind = "INVALID_FEE"
	ErrInvalidDelegating  ErrorKind = "INVALID_DELEGATING"
	ErrInvalidVoting      ErrorKind = "INVALID_VOTING"
	ErrInsufficientAvail  ErrorKind = "INSUFFICIENT_AVAILABLE"
	ErrInsufficientLocked ErrorKind = "INSUFFICIENT_LOCKED"
)

// LogEntry is one entry of a successful execution's log trail. Each entry
// carries a correlation id so that downstream receipt storage can
// reference a specific line without depending on slice order.
type LogEntry struct {
	ID      string
	Message string
}

func newLogEntry(message string) LogEntry {
	return LogEntry{ID: uuid.New().String(), Message: message}
}

// TransactionResult is the executor's tagged result: either a Success
// carrying logs/return bytes, or a Failure carrying an ErrorKind. It is a
// sum type in spirit — callers must check Success before reading Error,
// and vice versa — deliberately avoiding control-flow-by-exception.
type TransactionResult struct {
	Success bool
	Error   ErrorKind
	Logs    []LogEntry
	Return  []byte
}

func success(logs ...string) TransactionResult {
	entries := make([]LogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, newLogEntry(l))
	}
	return TransactionResult{Success: true, Logs: entries}
}

func failure(kind ErrorKind) TransactionResult {
	return TransactionResult{Success: false, Error: kind}
}
