// Package wire is the streaming codec between the imap type lattice and
// the bytes on the connection. Every decode entry point is a pure
// function from an input slice to a Result: it never buffers state across
// calls, and the caller owns retry-with-more-data and literal-payload
// sourcing. Every encode entry point produces a Fragment sequence rather
// than writing to an io.Writer directly, so a caller can pause between
// fragments exactly at a literal-continuation point.
package wire

import "github.com/corvidmail/imapcodec"

// Status discriminates a Result.
type Status int

const (
	// StatusConsumed means decoding succeeded; Value and Rest are valid.
	StatusConsumed Status = iota
	// StatusIncomplete means the input slice ended before a decision could
	// be made; the caller should read more bytes and retry with the
	// concatenated buffer.
	StatusIncomplete
	// StatusLiteralFound means the parser reached a literal header and the
	// buffer does not yet contain the full literal payload; Literal names
	// how many raw octets the caller must obtain (without scanning them
	// for line structure) before retrying.
	StatusLiteralFound
	// StatusFailed means the input is not a valid production; Reason
	// explains why.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConsumed:
		return "consumed"
	case StatusIncomplete:
		return "incomplete"
	case StatusLiteralFound:
		return "literal-found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LiteralHeader describes a literal this decoder has recognised the
// `{n}` or `{n+}` header of, but whose payload has not fully arrived.
type LiteralHeader struct {
	Length int64
	Mode   imap.LiteralMode
}

// Result is the outcome of one decode call. Exactly the fields relevant
// to Status are meaningful; the rest are zero.
type Result[T any] struct {
	Status  Status
	Value   T
	Rest    []byte
	Literal LiteralHeader
	Reason  string
}

// Consumed builds a successful Result: value decoded, rest left over.
func Consumed[T any](value T, rest []byte) Result[T] {
	return Result[T]{Status: StatusConsumed, Value: value, Rest: rest}
}

// Incomplete builds a Result asking the caller for more bytes.
func Incomplete[T any]() Result[T] {
	var zero T
	return Result[T]{Status: StatusIncomplete, Value: zero}
}

// LiteralFound builds a Result pausing at a literal's header.
func LiteralFound[T any](h LiteralHeader) Result[T] {
	var zero T
	return Result[T]{Status: StatusLiteralFound, Value: zero, Literal: h}
}

// Failed builds a Result reporting a grammar violation.
func Failed[T any](reason string) Result[T] {
	var zero T
	return Result[T]{Status: StatusFailed, Value: zero, Reason: reason}
}

// mapResult adapts a Result[A] to a Result[B] after a successful decode,
// used to thread a leaf decode into the bigger production that invoked it.
func mapResult[A, B any](r Result[A], f func(A) B) Result[B] {
	switch r.Status {
	case StatusConsumed:
		return Consumed(f(r.Value), r.Rest)
	case StatusIncomplete:
		return Incomplete[B]()
	case StatusLiteralFound:
		return LiteralFound[B](r.Literal)
	default:
		return Failed[B](r.Reason)
	}
}
