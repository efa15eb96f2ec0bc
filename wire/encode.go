package wire

import (
	"strconv"

	"github.com/corvidmail/imapcodec"
)

// writeQuoted writes s as a quoted string, escaping '"' and '\'. It never
// chooses a literal: callers that need the cheapest representation should
// go through writeAString/writeNString instead.
func writeQuoted(b *builder, s string) {
	b.writeByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.writeByte('\\')
		}
		b.writeByte(c)
	}
	b.writeByte('"')
}

// writeAString writes v in whichever flavour it already is: an Atom or
// AtomExt as bare text, a QuotedString quoted, a Literal as a fragment
// boundary the caller may need to pause at.
func writeAString(b *builder, v imap.AString) {
	switch t := v.(type) {
	case imap.Atom:
		b.writeString(t.String())
	case imap.AtomExt:
		b.writeString(t.String())
	case imap.QuotedString:
		writeQuoted(b, t.String())
	case imap.Literal:
		b.writeString("{" + strconv.Itoa(len(t.Bytes())))
		if t.Mode() == imap.LiteralNonSync {
			b.writeByte('+')
		}
		b.writeString("}\r\n")
		b.literal(t.Bytes(), t.Mode())
	}
}

// writeNString writes v: the literal token NIL for the Nil case, else
// delegates to writeAString (every IString is also an AString).
func writeNString(b *builder, v imap.NString) {
	if imap.IsNil(v) {
		b.writeString("NIL")
		return
	}
	if a, ok := v.(imap.AString); ok {
		writeAString(b, a)
		return
	}
	b.writeString("NIL")
}

// writeMailbox writes m's wire name, honouring the distinguished INBOX
// spelling requirement by emitting the literal atom "INBOX".
func writeMailbox(b *builder, m imap.Mailbox) {
	if m.IsInbox() {
		b.writeString("INBOX")
		return
	}
	writeAString(b, m.Name())
}

func writeFlags(b *builder, flags []imap.Flag) {
	b.writeByte('(')
	for i, f := range flags {
		if i > 0 {
			b.writeByte(' ')
		}
		b.writeString(string(f))
	}
	b.writeByte(')')
}

func writeNumSet(b *builder, set imap.NumSet) {
	if set == nil {
		return
	}
	b.writeString(set.String())
}
