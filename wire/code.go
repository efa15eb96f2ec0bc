package wire

import (
	"strconv"
	"strings"

	"github.com/corvidmail/imapcodec"
)

// decodeOptionalCode decodes an optional `[code [SP code-arg]]` group. If
// data does not begin with '[', it reports no code present by returning a
// zero Code/nil CodeArg and leaving data untouched.
func decodeOptionalCode(data []byte, q Quirks) (imap.Code, imap.CodeArg, []byte, Status, string) {
	if len(data) == 0 {
		return "", nil, nil, StatusIncomplete, ""
	}
	if data[0] != '[' {
		return "", nil, data, StatusConsumed, ""
	}
	rest := data[1:]
	name := decodeAtomRaw(rest)
	switch name.Status {
	case StatusIncomplete:
		return "", nil, nil, StatusIncomplete, ""
	case StatusFailed:
		return "", nil, nil, StatusFailed, name.Reason
	}
	rest = name.Rest
	code := imap.Code(strings.ToUpper(name.Value))

	arg, rest2, status, reason := decodeCodeArg(code, rest, q)
	switch status {
	case StatusIncomplete:
		return "", nil, nil, StatusIncomplete, ""
	case StatusFailed:
		return "", nil, nil, StatusFailed, reason
	}
	rest = rest2

	if len(rest) == 0 {
		return "", nil, nil, StatusIncomplete, ""
	}
	if rest[0] != ']' {
		return "", nil, nil, StatusFailed, "expected ']' closing response code"
	}
	return code, arg, rest[1:], StatusConsumed, ""
}

func decodeCodeArg(code imap.Code, data []byte, q Quirks) (imap.CodeArg, []byte, Status, string) {
	switch code {
	case imap.CodeCapability:
		caps, rest, status, reason := decodeCapList(data)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		return imap.CodeArgCapability{Caps: caps}, rest, StatusConsumed, ""
	case imap.CodePermanentFlags:
		flags, rest, status, reason := decodeParenFlagList(data)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		return imap.CodeArgPermanentFlags{Flags: flags}, rest, StatusConsumed, ""
	case imap.CodeUIDNext, imap.CodeUIDValidity, imap.CodeUnseen:
		if s := decodeSP(data); s.Status == StatusConsumed {
			data = s.Rest
		} else if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		n := decodeNumber(data)
		if n.Status != StatusConsumed {
			return nil, nil, n.Status, n.Reason
		}
		return imap.CodeArgNumber{Value: n.Value}, n.Rest, StatusConsumed, ""
	case imap.CodeHighestModSeq:
		if s := decodeSP(data); s.Status == StatusConsumed {
			data = s.Rest
		} else if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		n := decodeNumber64(data)
		if n.Status != StatusConsumed {
			return nil, nil, n.Status, n.Reason
		}
		return imap.CodeArgModSeq{Value: n.Value}, n.Rest, StatusConsumed, ""
	case imap.CodeAppendUID:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		uv := decodeNumber(s.Rest)
		if uv.Status != StatusConsumed {
			return nil, nil, uv.Status, uv.Reason
		}
		s2 := decodeSP(uv.Rest)
		if s2.Status != StatusConsumed {
			return nil, nil, s2.Status, s2.Reason
		}
		uid := decodeNumber(s2.Rest)
		if uid.Status != StatusConsumed {
			return nil, nil, uid.Status, uid.Reason
		}
		return imap.CodeArgAppendUID{UIDValidity: uv.Value, UID: imap.UID(uid.Value)}, uid.Rest, StatusConsumed, ""
	case imap.CodeReferral:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		n := decodeAtomRaw(s.Rest)
		if n.Status != StatusConsumed {
			return nil, nil, n.Status, n.Reason
		}
		return imap.CodeArgReferral{URL: n.Value}, n.Rest, StatusConsumed, ""
	default:
		// Catch-all: consume the rest of the bracketed text verbatim.
		rest := data
		if s := decodeSP(data); s.Status == StatusConsumed {
			rest = s.Rest
		}
		i := 0
		for i < len(rest) && rest[i] != ']' {
			i++
		}
		if i == len(rest) {
			return nil, nil, StatusIncomplete, ""
		}
		if i == 0 {
			return nil, rest, StatusConsumed, ""
		}
		return imap.CodeArgOther{Text: string(rest[:i])}, rest[i:], StatusConsumed, ""
	}
}

func decodeCapList(data []byte) ([]imap.Cap, []byte, Status, string) {
	var caps []imap.Cap
	rest := data
	for {
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			if s.Status == StatusIncomplete {
				return nil, nil, StatusIncomplete, ""
			}
			break
		}
		a := decodeAtomRaw(s.Rest)
		if a.Status == StatusIncomplete {
			return nil, nil, StatusIncomplete, ""
		}
		if a.Status != StatusConsumed {
			break
		}
		caps = append(caps, imap.Cap(a.Value))
		rest = a.Rest
	}
	return caps, rest, StatusConsumed, ""
}

func decodeParenFlagList(data []byte) ([]imap.Flag, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	return decodeFlagParenList(s.Rest)
}

func encodeOptionalCode(b *builder, code imap.Code, arg imap.CodeArg) {
	if code == "" {
		return
	}
	b.writeString(" [")
	b.writeString(string(code))
	switch a := arg.(type) {
	case imap.CodeArgCapability:
		for _, c := range a.Caps {
			b.writeByte(' ')
			b.writeString(string(c))
		}
	case imap.CodeArgPermanentFlags:
		b.writeString(" (")
		for i, f := range a.Flags {
			if i > 0 {
				b.writeByte(' ')
			}
			b.writeString(string(f))
		}
		b.writeByte(')')
	case imap.CodeArgNumber:
		b.writeByte(' ')
		b.writeString(strconv.FormatUint(uint64(a.Value), 10))
	case imap.CodeArgModSeq:
		b.writeByte(' ')
		b.writeString(strconv.FormatUint(a.Value, 10))
	case imap.CodeArgAppendUID:
		b.writeByte(' ')
		b.writeString(strconv.FormatUint(uint64(a.UIDValidity), 10))
		b.writeByte(' ')
		b.writeString(strconv.FormatUint(uint64(a.UID), 10))
	case imap.CodeArgCopyUID:
		b.writeByte(' ')
		b.writeString(strconv.FormatUint(uint64(a.UIDValidity), 10))
		b.writeByte(' ')
		b.writeString(a.Source.String())
		b.writeByte(' ')
		b.writeString(a.Dest.String())
	case imap.CodeArgModified:
		b.writeByte(' ')
		b.writeString(a.NumSet.String())
	case imap.CodeArgReferral:
		b.writeByte(' ')
		b.writeString(a.URL)
	case imap.CodeArgBadCharset:
		if len(a.Charsets) > 0 {
			b.writeString(" (" + strings.Join(a.Charsets, " ") + ")")
		}
	case imap.CodeArgMetadata:
		if a.LongEntries {
			b.writeString(" LONGENTRIES " + strconv.FormatUint(uint64(a.LongEntriesValue), 10))
		} else if a.MaxSize {
			b.writeString(" MAXSIZE " + strconv.FormatUint(uint64(a.MaxSizeValue), 10))
		}
	case imap.CodeArgOther:
		if a.Text != "" {
			b.writeByte(' ')
			b.writeString(a.Text)
		}
	}
	b.writeByte(']')
}
