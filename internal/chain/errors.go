package chain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTimeout marks a transaction whose fate is unknown: polling gave up
// before the cluster confirmed or rejected it.  Distinct from failure, since
// the transaction may still land.
var ErrTimeout = errors.New("confirmation timed out")

// Kind classifies a chain failure for presentation.
type Kind int

const (
	Unknown Kind = iota
	AlreadyActioned
	InsufficientFunds
	UserRejected
	Expired
)

// Error is a categorized chain failure carrying the raw node message.
type Error struct {
	Kind Kind
	Raw  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case AlreadyActioned:
		return "Already voted"
	case InsufficientFunds:
		return "Insufficient funds"
	case UserRejected:
		return "Transaction rejected by user"
	case Expired:
		return "Transaction expired, please try again"
	default:
		return fmt.Sprintf("transaction failed: %s", e.Raw)
	}
}

// Categorize maps a node or wallet error message onto a Kind by substring,
// the only signal the RPC surface gives us.
func Categorize(msg string) *Error {
	switch {
	case strings.Contains(msg, "AlreadyVoted"), strings.Contains(msg, "0x1770"),
		strings.Contains(msg, "Error Number: 6000"),
		strings.Contains(msg, "User has already voted"):
		return &Error{Kind: AlreadyActioned, Raw: msg}
	case strings.Contains(strings.ToLower(msg), "insufficient funds"),
		strings.Contains(strings.ToLower(msg), "insufficient lamports"):
		return &Error{Kind: InsufficientFunds, Raw: msg}
	case strings.Contains(msg, "User rejected"):
		return &Error{Kind: UserRejected, Raw: msg}
	case strings.Contains(msg, "Blockhash not found"):
		return &Error{Kind: Expired, Raw: msg}
	default:
		return &Error{Kind: Unknown, Raw: msg}
	}
}
