package imap

import (
	"strings"

	"github.com/corvidmail/imapcodec/wire/utf7"
)

// This file is the heart of the misuse-resistant type lattice (§3, §4.1):
// one Go type per IMAP "string flavour", each constructed only through a
// validating function. Widening conversions between flavours (Atom is
// always a valid AString, any IString is always a valid NString) are
// expressed as Go interface satisfaction and therefore cannot fail;
// narrowing conversions are explicit functions that return an error.

// LiteralMode distinguishes a synchronising literal ({n}) from a
// non-synchronising one ({n+}), which requires LITERAL+/LITERAL- support.
type LiteralMode int

const (
	// LiteralSync is a synchronising literal: the sender must wait for a
	// continuation reply before transmitting the payload.
	LiteralSync LiteralMode = iota
	// LiteralNonSync is a non-synchronising literal ({n+}): the sender may
	// push the payload immediately, only valid when the peer announced
	// LITERAL+ or LITERAL- support.
	LiteralNonSync
)

func (m LiteralMode) String() string {
	if m == LiteralNonSync {
		return "non-synchronizing"
	}
	return "synchronizing"
}

// Atom is one or more atom-chars: printable ASCII minus the IMAP specials
// `(){ %*"\]`, SP, and control characters.
type Atom struct{ s string }

// NewAtom validates s as an atom.
func NewAtom(s string) (Atom, error) {
	if len(s) == 0 {
		return Atom{}, newValidationError("atom must not be empty")
	}
	for i := 0; i < len(s); i++ {
		if !isAtomChar(s[i]) {
			return Atom{}, newValidationErrorAt("atom must not contain "+quoteByte(s[i]), i)
		}
	}
	return Atom{s: s}, nil
}

// UnvalidatedAtom trusts the caller that s is already a valid atom. The
// validator still runs and panics on violation, so this only saves a
// propagated error return for callers that can prove correctness (e.g. a
// decoder re-wrapping bytes it already scanned as an atom).
func UnvalidatedAtom(s string) Atom {
	a, err := NewAtom(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the atom's text.
func (a Atom) String() string { return a.s }

func (a Atom) isAString() {}

// AtomExt is an astring-atom: one or more astring-chars (atom-chars plus
// the otherwise-reserved "]"). It is used in productions where "]" is not
// ambiguous, such as an unterminated response-code catch-all.
type AtomExt struct{ s string }

// NewAtomExt validates s as an astring-atom.
func NewAtomExt(s string) (AtomExt, error) {
	if len(s) == 0 {
		return AtomExt{}, newValidationError("astring-atom must not be empty")
	}
	for i := 0; i < len(s); i++ {
		if !isAStringChar(s[i]) {
			return AtomExt{}, newValidationErrorAt("astring-atom must not contain "+quoteByte(s[i]), i)
		}
	}
	return AtomExt{s: s}, nil
}

func (a AtomExt) String() string { return a.s }
func (a AtomExt) isAString()     {}

// QuotedString is a "-delimited string: zero or more quoted-chars (any
// 7-bit byte except CR, LF, and NUL), with '"' and '\' escaped on the wire.
// The stored value is the unescaped content.
type QuotedString struct{ s string }

// NewQuotedString validates s as the (unescaped) content of a quoted string.
func NewQuotedString(s string) (QuotedString, error) {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '\r' || b == '\n' {
			return QuotedString{}, newValidationErrorAt("quoted string must not contain CR/LF", i)
		}
		if b == 0x00 {
			return QuotedString{}, newValidationErrorAt("quoted string must not contain NUL", i)
		}
		if b >= 0x80 {
			return QuotedString{}, newValidationErrorAt("quoted string must be 7-bit", i)
		}
	}
	return QuotedString{s: s}, nil
}

func (q QuotedString) String() string { return q.s }
func (q QuotedString) isIString()     {}
func (q QuotedString) isAString()     {}
func (q QuotedString) isNString()     {}

// Literal is a length-prefixed octet block: {n}CRLF<n octets> or, for
// LITERAL+/LITERAL-, {n+}CRLF<n octets>. Any octet sequence is admitted
// except one containing NUL.
type Literal struct {
	b    []byte
	mode LiteralMode
}

// NewLiteral validates data as literal content and records its mode.
func NewLiteral(data []byte, mode LiteralMode) (Literal, error) {
	for i, b := range data {
		if b == 0x00 {
			return Literal{}, newValidationErrorAt("literal must not contain NUL", i)
		}
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return Literal{b: cp, mode: mode}, nil
}

// Bytes returns the literal's content. The caller must not mutate it.
func (l Literal) Bytes() []byte     { return l.b }
func (l Literal) Mode() LiteralMode { return l.mode }
func (l Literal) isIString()        {}
func (l Literal) isAString()        {}
func (l Literal) isNString()        {}

// IString is the sum Quoted ∪ Literal: any type that satisfies it is
// guaranteed to be one of those two constructors' output.
type IString interface {
	isIString()
	isNString()
}

// AString is the sum Atom ∪ IString (Atom ∪ Quoted ∪ Literal).
type AString interface {
	isAString()
}

// NString is the sum IString ∪ Nil: a possibly-absent string value.
type NString interface {
	isNString()
}

// nilValue is the unique inhabitant of the Nil case of NString.
type nilValue struct{}

func (nilValue) isNString() {}

// Nil is the NString value representing the wire token NIL.
var Nil NString = nilValue{}

// IsNil reports whether n is the Nil case.
func IsNil(n NString) bool {
	_, ok := n.(nilValue)
	return ok
}

// AStringToIString performs the fallible narrowing conversion from AString
// to IString: it fails when the value is the Atom case.
func AStringToIString(s AString) (IString, error) {
	if is, ok := s.(IString); ok {
		return is, nil
	}
	return nil, newValidationError("astring value is an atom, not a string")
}

// NStringToIString performs the fallible narrowing conversion from NString
// to IString: it fails when the value is the Nil case.
func NStringToIString(n NString) (IString, error) {
	if is, ok := n.(IString); ok {
		return is, nil
	}
	return nil, newValidationError("nstring value is NIL")
}

// AStringText extracts the underlying text of an AString regardless of
// which flavour it was constructed as. For a Literal this decodes as
// Latin-1-transparent bytes (the grammar only guarantees 8-bit octets,
// not a particular charset).
func AStringText(s AString) string {
	switch v := s.(type) {
	case Atom:
		return v.s
	case AtomExt:
		return v.s
	case QuotedString:
		return v.s
	case Literal:
		return string(v.b)
	default:
		return ""
	}
}

// NewAString picks the cheapest representation of s: Atom if every byte is
// an atom-char, else QuotedString if 7-bit and free of CR/LF/NUL, else a
// synchronising Literal.
func NewAString(s string) AString {
	if a, err := NewAtom(s); err == nil {
		return a
	}
	if q, err := NewQuotedString(s); err == nil {
		return q
	}
	l, _ := NewLiteral([]byte(s), LiteralSync)
	return l
}

// NewNString picks the cheapest AString representation of s, or Nil when
// present is false.
func NewNString(s string, present bool) NString {
	if !present {
		return Nil
	}
	switch v := NewAString(s).(type) {
	case IString:
		return v
	default:
		// Atom is not an IString; NString admits only IString ∪ Nil, so an
		// atom-shaped value still needs to round-trip as a quoted string.
		q, err := NewQuotedString(s)
		if err != nil {
			l, _ := NewLiteral([]byte(s), LiteralSync)
			return l
		}
		return q
	}
}

// Tag is a client-chosen command identifier: atom-chars minus "+".
type Tag struct{ s string }

// NewTag validates s as a tag.
func NewTag(s string) (Tag, error) {
	if len(s) == 0 {
		return Tag{}, newValidationError("tag must not be empty")
	}
	for i := 0; i < len(s); i++ {
		if !isTagChar(s[i]) {
			return Tag{}, newValidationErrorAt("tag must not contain "+quoteByte(s[i]), i)
		}
	}
	return Tag{s: s}, nil
}

func (t Tag) String() string { return t.s }

// Text is one or more text-chars: printable ASCII plus SP, no CR/LF.
type Text struct{ s string }

// NewText validates s as human-readable response text.
func NewText(s string) (Text, error) {
	if len(s) == 0 {
		return Text{}, newValidationError("text must not be empty")
	}
	for i := 0; i < len(s); i++ {
		if !isTextChar(s[i]) {
			return Text{}, newValidationErrorAt("text must not contain CR/LF or control characters", i)
		}
	}
	return Text{s: s}, nil
}

func (t Text) String() string { return t.s }

// Mailbox is an AString with the distinguished, case-insensitive value
// INBOX: any spelling of "inbox" denotes the same mailbox and is
// canonicalised to the upper-case atom on construction.
type Mailbox struct {
	name    AString
	isInbox bool
}

// NewMailbox validates name as a mailbox name, recognising any case
// variant of "INBOX" as the distinguished inbox. name is taken as
// already-encoded wire text (modified UTF-7, per §5.1.3); use
// NewMailboxUTF8 to encode a UTF-8 name first.
func NewMailbox(name string) (Mailbox, error) {
	if strings.EqualFold(name, "INBOX") {
		return Mailbox{name: UnvalidatedAtom("INBOX"), isInbox: true}, nil
	}
	a := NewAString(name)
	return Mailbox{name: a}, nil
}

// NewMailboxUTF8 encodes name (a UTF-8 mailbox name) as modified UTF-7
// before constructing the Mailbox.
func NewMailboxUTF8(name string) (Mailbox, error) {
	return NewMailbox(utf7.Encode(name))
}

// UTF8Name decodes m's wire name from modified UTF-7 back to UTF-8.
func (m Mailbox) UTF8Name() (string, error) {
	s, err := utf7.Decode(AStringText(m.name))
	if err != nil {
		return "", newValidationError("mailbox name is not valid modified UTF-7: " + err.Error())
	}
	return s, nil
}

// IsInbox reports whether m denotes the distinguished INBOX mailbox.
func (m Mailbox) IsInbox() bool { return m.isInbox }

// Name returns the mailbox's AString representation (already UTF-7
// encoded if constructed via NewMailboxUTF8).
func (m Mailbox) Name() AString { return m.name }

// String returns the mailbox's raw wire text (still UTF-7 encoded, if
// applicable).
func (m Mailbox) String() string { return AStringText(m.name) }

func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return "'" + string(rune(b)) + "'"
	}
	return "a control byte"
}
