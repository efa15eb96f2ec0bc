package wire

import (
	"strings"

	"github.com/corvidmail/imapcodec"
)

// decodeIDParams decodes an ID field list: either the bare atom NIL or a
// parenthesised sequence of string/nstring field-value pairs. Shared by
// the ID command argument and the untagged ID response data, since RFC
// 2971 gives them the same grammar.
func decodeIDParams(data []byte, q Quirks) (imap.IDParams, []byte, Status, string) {
	if len(data) > 0 && (data[0] == 'N' || data[0] == 'n') {
		n := decodeAtomRaw(data)
		if n.Status == StatusConsumed && strings.EqualFold(n.Value, "NIL") {
			return imap.IDParams{}, n.Rest, StatusConsumed, ""
		}
	}
	p := decodeByte(data, '(')
	if p.Status != StatusConsumed {
		return imap.IDParams{}, nil, p.Status, p.Reason
	}
	var fields []imap.IDParam
	rest := p.Rest
	first := true
	for {
		if len(rest) == 0 {
			return imap.IDParams{}, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			return imap.IDParams{Fields: fields}, rest[1:], StatusConsumed, ""
		}
		if !first {
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				return imap.IDParams{}, nil, sp.Status, sp.Reason
			}
			rest = sp.Rest
		}
		name := decodeIString(rest, q)
		if name.Status != StatusConsumed {
			return imap.IDParams{}, nil, name.Status, name.Reason
		}
		sp2 := decodeSP(name.Rest)
		if sp2.Status != StatusConsumed {
			return imap.IDParams{}, nil, sp2.Status, sp2.Reason
		}
		val := decodeNString(sp2.Rest, q)
		if val.Status != StatusConsumed {
			return imap.IDParams{}, nil, val.Status, val.Reason
		}
		fields = append(fields, imap.IDParam{Field: istringText(name.Value), Value: val.Value})
		rest = val.Rest
		first = false
	}
}

func istringText(s imap.IString) string {
	switch v := s.(type) {
	case imap.QuotedString:
		return v.String()
	case imap.Literal:
		return string(v.Bytes())
	default:
		return ""
	}
}

// encodeIDParams encodes an ID field list to a builder: NIL, or a
// parenthesised list of quoted-string name/nstring-value pairs.
func encodeIDParams(b *builder, p imap.IDParams, hasParams bool) {
	if !hasParams {
		b.writeString("NIL")
		return
	}
	b.writeByte('(')
	for i, f := range p.Fields {
		if i > 0 {
			b.writeByte(' ')
		}
		writeQuoted(b, f.Field)
		b.writeByte(' ')
		writeNString(b, f.Value)
	}
	b.writeByte(')')
}
