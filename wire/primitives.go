package wire

import (
	"strconv"
	"strings"

	"github.com/corvidmail/imapcodec"
)

// scanWhile returns the length of the longest prefix of data all matching
// pred, and whether that prefix is known to be complete (i.e. terminated
// by a non-matching byte still inside data). If every byte in data
// matches pred, the prefix might continue in bytes not yet received, so
// complete is false (the caller should report Incomplete unless data is
// empty too).
func scanWhile(data []byte, pred func(byte) bool) (n int, complete bool) {
	for n = 0; n < len(data); n++ {
		if !pred(data[n]) {
			return n, true
		}
	}
	return n, false
}

func decodeSP(data []byte) Result[struct{}] {
	if len(data) == 0 {
		return Incomplete[struct{}]()
	}
	if data[0] != ' ' {
		return Failed[struct{}]("expected SP")
	}
	return Consumed(struct{}{}, data[1:])
}

func decodeCRLF(data []byte, q Quirks) Result[struct{}] {
	if len(data) == 0 {
		return Incomplete[struct{}]()
	}
	if data[0] == '\n' && q.CRLFRelaxed {
		return Consumed(struct{}{}, data[1:])
	}
	if data[0] != '\r' {
		return Failed[struct{}]("expected CRLF")
	}
	if len(data) < 2 {
		return Incomplete[struct{}]()
	}
	if data[1] != '\n' {
		return Failed[struct{}]("expected CRLF")
	}
	return Consumed(struct{}{}, data[2:])
}

func decodeByte(data []byte, b byte) Result[struct{}] {
	if len(data) == 0 {
		return Incomplete[struct{}]()
	}
	if data[0] != b {
		return Failed[struct{}]("expected " + string(b))
	}
	return Consumed(struct{}{}, data[1:])
}

// decodeAtomRaw scans one atom's raw text without validating/wrapping it.
func decodeAtomRaw(data []byte) Result[string] {
	n, complete := scanWhile(data, imap.IsAtomChar)
	if !complete {
		return Incomplete[string]()
	}
	if n == 0 {
		return Failed[string]("expected atom")
	}
	return Consumed(string(data[:n]), data[n:])
}

func decodeAtom(data []byte) Result[imap.Atom] {
	r := decodeAtomRaw(data)
	return mapResult(r, func(s string) imap.Atom { return imap.UnvalidatedAtom(s) })
}

// decodeFlagRaw scans one flag's raw text: an optional leading "\" (system
// flag / flag-extension) followed by one or more atom-chars. The grammar
// excludes "\" from atom-char itself, so a plain decodeAtomRaw can't be
// reused here.
func decodeFlagRaw(data []byte) Result[string] {
	prefix := 0
	if len(data) > 0 && data[0] == '\\' {
		prefix = 1
		// "\*" (flag-perm's wildcard meaning "any keyword permitted") has no
		// atom-chars after the backslash, since '*' is a list-wildcard, not
		// an atom-char.
		if len(data) > 1 && data[1] == '*' {
			return Consumed(`\*`, data[2:])
		}
		if len(data) == 1 {
			return Incomplete[string]()
		}
	}
	n, complete := scanWhile(data[prefix:], imap.IsAtomChar)
	if !complete {
		return Incomplete[string]()
	}
	if n == 0 {
		return Failed[string]("expected flag")
	}
	return Consumed(string(data[:prefix+n]), data[prefix+n:])
}

func decodeTagRaw(data []byte) Result[string] {
	n, complete := scanWhile(data, imap.IsTagChar)
	if !complete {
		return Incomplete[string]()
	}
	if n == 0 {
		return Failed[string]("expected tag")
	}
	return Consumed(string(data[:n]), data[n:])
}

func decodeTag(data []byte) Result[imap.Tag] {
	r := decodeTagRaw(data)
	return mapResult(r, func(s string) imap.Tag {
		t, err := imap.NewTag(s)
		if err != nil {
			panic(err) // decodeTagRaw already validated tag-char
		}
		return t
	})
}

// decodeLine scans up to (but not including) the terminating CRLF,
// returning Incomplete until CRLF (or a bare LF under CRLFRelaxed) is seen.
func decodeLine(data []byte, q Quirks) Result[string] {
	for i := 0; i < len(data); i++ {
		if data[i] == '\r' || (q.CRLFRelaxed && data[i] == '\n') {
			return Consumed(string(data[:i]), data[i:])
		}
	}
	return Incomplete[string]()
}

func decodeText(data []byte, q Quirks) Result[imap.Text] {
	r := decodeLine(data, q)
	if r.Status != StatusConsumed {
		return mapResult(r, func(s string) imap.Text { return imap.Text{} })
	}
	if r.Value == "" {
		if q.MissingText {
			return Consumed(imap.Text{}, r.Rest)
		}
		return Failed[imap.Text]("expected text")
	}
	t, err := imap.NewText(r.Value)
	if err != nil {
		return Failed[imap.Text](err.Error())
	}
	return Consumed(t, r.Rest)
}

func decodeNumberRaw(data []byte) Result[uint64] {
	n, complete := scanWhile(data, func(b byte) bool { return b >= '0' && b <= '9' })
	if !complete {
		return Incomplete[uint64]()
	}
	if n == 0 {
		return Failed[uint64]("expected number")
	}
	v, err := strconv.ParseUint(string(data[:n]), 10, 64)
	if err != nil {
		return Failed[uint64]("number out of range")
	}
	return Consumed(v, data[n:])
}

func decodeNumber(data []byte) Result[uint32] {
	return mapResult(decodeNumberRaw(data), func(v uint64) uint32 { return uint32(v) })
}

func decodeNumber64(data []byte) Result[uint64] {
	return decodeNumberRaw(data)
}

// decodeQuotedString decodes a "-delimited string, unescaping \" and \\.
func decodeQuotedString(data []byte) Result[imap.QuotedString] {
	if len(data) == 0 {
		return Incomplete[imap.QuotedString]()
	}
	if data[0] != '"' {
		return Failed[imap.QuotedString]("expected quoted string")
	}
	var sb strings.Builder
	i := 1
	for {
		if i >= len(data) {
			return Incomplete[imap.QuotedString]()
		}
		b := data[i]
		if b == '"' {
			q, err := imap.NewQuotedString(sb.String())
			if err != nil {
				return Failed[imap.QuotedString](err.Error())
			}
			return Consumed(q, data[i+1:])
		}
		if b == '\\' {
			if i+1 >= len(data) {
				return Incomplete[imap.QuotedString]()
			}
			esc := data[i+1]
			if !imap.IsQuotedSpecial(esc) {
				return Failed[imap.QuotedString]("invalid escape in quoted string")
			}
			sb.WriteByte(esc)
			i += 2
			continue
		}
		if b == '\r' || b == '\n' {
			return Failed[imap.QuotedString]("quoted string must not contain CR/LF")
		}
		sb.WriteByte(b)
		i++
	}
}

// decodeLiteralHeader parses `{n}` or `{n+}` followed by CRLF, returning
// the parsed header and the position right after that CRLF (i.e. where
// the payload octets begin).
func decodeLiteralHeader(data []byte, q Quirks) Result[LiteralHeader] {
	if len(data) == 0 {
		return Incomplete[LiteralHeader]()
	}
	if data[0] != '{' {
		return Failed[LiteralHeader]("expected literal header")
	}
	rest := data[1:]
	nr := decodeNumberRaw(rest)
	switch nr.Status {
	case StatusIncomplete:
		return Incomplete[LiteralHeader]()
	case StatusFailed:
		return Failed[LiteralHeader](nr.Reason)
	}
	rest = nr.Rest
	mode := imap.LiteralSync
	if len(rest) == 0 {
		return Incomplete[LiteralHeader]()
	}
	if rest[0] == '+' {
		mode = imap.LiteralNonSync
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return Incomplete[LiteralHeader]()
	}
	if rest[0] != '}' {
		return Failed[LiteralHeader]("expected '}' closing literal header")
	}
	rest = rest[1:]
	crlf := decodeCRLF(rest, q)
	switch crlf.Status {
	case StatusIncomplete:
		return Incomplete[LiteralHeader]()
	case StatusFailed:
		return Failed[LiteralHeader](crlf.Reason)
	}
	return Consumed(LiteralHeader{Length: int64(nr.Value), Mode: mode}, crlf.Rest)
}

// decodeLiteral decodes a full literal: header, then its payload. If the
// payload is not yet fully in data, it reports StatusLiteralFound instead
// of consuming the header, so the caller can switch to raw byte reading.
func decodeLiteral(data []byte, q Quirks) Result[imap.Literal] {
	hdr := decodeLiteralHeader(data, q)
	switch hdr.Status {
	case StatusIncomplete:
		return Incomplete[imap.Literal]()
	case StatusFailed:
		return Failed[imap.Literal](hdr.Reason)
	}
	if int64(len(hdr.Rest)) < hdr.Value.Length {
		return LiteralFound[imap.Literal](hdr.Value)
	}
	payload := hdr.Rest[:hdr.Value.Length]
	rest := hdr.Rest[hdr.Value.Length:]
	lit, err := imap.NewLiteral(payload, hdr.Value.Mode)
	if err != nil {
		return Failed[imap.Literal](err.Error())
	}
	return Consumed(lit, rest)
}

// decodeFlagParenList decodes a parenthesised list of flags, e.g.
// "(\Seen \Answered keyword)". Shared by the FLAGS response data item, the
// APPEND flag list, and the STORE flag list.
func decodeFlagParenList(data []byte) ([]imap.Flag, []byte, Status, string) {
	p := decodeByte(data, '(')
	if p.Status != StatusConsumed {
		return nil, nil, p.Status, p.Reason
	}
	var flags []imap.Flag
	rest := p.Rest
	first := true
	for {
		if len(rest) == 0 {
			return nil, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			return flags, rest[1:], StatusConsumed, ""
		}
		if !first {
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				return nil, nil, sp.Status, sp.Reason
			}
			rest = sp.Rest
		}
		f := decodeFlagRaw(rest)
		if f.Status != StatusConsumed {
			return nil, nil, f.Status, f.Reason
		}
		flags = append(flags, imap.Flag(f.Value))
		rest = f.Rest
		first = false
	}
}

// decodeIString decodes the Quoted ∪ Literal sum.
func decodeIString(data []byte, q Quirks) Result[imap.IString] {
	if len(data) == 0 {
		return Incomplete[imap.IString]()
	}
	if data[0] == '"' {
		return mapResult(decodeQuotedString(data), func(v imap.QuotedString) imap.IString { return v })
	}
	if data[0] == '{' {
		return mapResult(decodeLiteral(data, q), func(v imap.Literal) imap.IString { return v })
	}
	return Failed[imap.IString]("expected quoted string or literal")
}

// decodeAString decodes the Atom ∪ IString sum.
func decodeAString(data []byte, q Quirks) Result[imap.AString] {
	if len(data) == 0 {
		return Incomplete[imap.AString]()
	}
	switch data[0] {
	case '"':
		return mapResult(decodeQuotedString(data), func(v imap.QuotedString) imap.AString { return v })
	case '{':
		return mapResult(decodeLiteral(data, q), func(v imap.Literal) imap.AString { return v })
	default:
		r := decodeAStringAtomRaw(data)
		return mapResult(r, func(s string) imap.AString {
			a, err := imap.NewAtomExt(s)
			if err != nil {
				panic(err)
			}
			return a
		})
	}
}

func decodeAStringAtomRaw(data []byte) Result[string] {
	n, complete := scanWhile(data, imap.IsAStringChar)
	if !complete {
		return Incomplete[string]()
	}
	if n == 0 {
		return Failed[string]("expected astring-atom")
	}
	return Consumed(string(data[:n]), data[n:])
}

// decodeNString decodes the IString ∪ Nil sum. "NIL" is only recognised
// as the nil case when followed by a non-atom-char or end of buffer that
// is not itself ambiguous (i.e. the caller has signalled no more data is
// coming some other way; here we treat end-of-buffer right after "NIL" as
// Incomplete to stay conservative, matching streaming semantics).
func decodeNString(data []byte, q Quirks) Result[imap.NString] {
	if len(data) >= 3 && strings.EqualFold(string(data[:3]), "NIL") {
		if len(data) == 3 {
			return Incomplete[imap.NString]()
		}
		if !imap.IsAtomChar(data[3]) {
			return Consumed[imap.NString](imap.Nil, data[3:])
		}
	} else if len(data) < 3 {
		// Might still become "NIL" with more bytes, or might be a literal
		// or quoted string that happens to start differently. Literal/
		// quoted-string prefixes are unambiguous against "NIL", so only
		// stall if "NIL" is still a possible prefix match.
		if strings.EqualFold(string(data), "NIL"[:len(data)]) {
			return Incomplete[imap.NString]()
		}
	}
	return mapResult(decodeIString(data, q), func(v imap.IString) imap.NString { return v })
}

func decodeMailbox(data []byte, q Quirks) Result[imap.Mailbox] {
	r := decodeAString(data, q)
	return mapResult(r, func(v imap.AString) imap.Mailbox {
		mb, err := imap.NewMailbox(imap.AStringText(v))
		if err != nil {
			panic(err)
		}
		return mb
	})
}
