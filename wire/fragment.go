package wire

import (
	"bytes"

	"github.com/corvidmail/imapcodec"
)

// FragmentKind discriminates a Fragment.
type FragmentKind int

const (
	// FragmentLine is a run of bytes with no embedded pause point: the
	// caller may write it in one shot.
	FragmentLine FragmentKind = iota
	// FragmentLiteral is a literal payload: the caller may need to wait
	// for a continuation reply (synchronising literal) before writing it.
	FragmentLiteral
)

// Fragment is one piece of an encoded value. An encoder entry point
// returns a []Fragment rather than writing to an io.Writer directly, so
// the caller can stop exactly at a literal boundary to wait on a `+`
// continuation reply when Mode is LiteralSync.
type Fragment struct {
	Kind FragmentKind
	Data []byte

	// Mode is meaningful only for FragmentLiteral: whether the caller must
	// wait for a continuation reply before sending Data.
	Mode imap.LiteralMode
}

// LineFragment builds a FragmentLine.
func LineFragment(data []byte) Fragment {
	return Fragment{Kind: FragmentLine, Data: data}
}

// LiteralFragment builds a FragmentLiteral.
func LiteralFragment(data []byte, mode imap.LiteralMode) Fragment {
	return Fragment{Kind: FragmentLiteral, Data: data, Mode: mode}
}

// Dump concatenates every fragment's bytes in order, for callers that
// don't need the pause points (tests, or a transport with no need to wait
// for continuation replies, e.g. when every literal is non-synchronising).
func Dump(frags []Fragment) []byte {
	var buf bytes.Buffer
	for _, f := range frags {
		buf.Write(f.Data)
	}
	return buf.Bytes()
}

// builder accumulates fragments for an in-progress encode, coalescing
// adjacent line bytes into a single FragmentLine.
type builder struct {
	frags []Fragment
	line  bytes.Buffer
}

func (b *builder) writeString(s string) { b.line.WriteString(s) }
func (b *builder) writeByte(c byte)     { b.line.WriteByte(c) }

func (b *builder) flushLine() {
	if b.line.Len() > 0 {
		b.frags = append(b.frags, LineFragment(append([]byte(nil), b.line.Bytes()...)))
		b.line.Reset()
	}
}

func (b *builder) literal(data []byte, mode imap.LiteralMode) {
	b.flushLine()
	b.frags = append(b.frags, LiteralFragment(data, mode))
}

func (b *builder) fragments() []Fragment {
	b.flushLine()
	return b.frags
}
