package wire

import (
	"strings"

	"github.com/corvidmail/imapcodec"
)

// DecodeGreeting decodes the server's first line: `* (OK|PREAUTH|BYE)
// [code] text CRLF`.
func DecodeGreeting(data []byte, q Quirks) Result[imap.Greeting] {
	r := decodeByte(data, '*')
	if r.Status != StatusConsumed {
		return mapResult(r, func(struct{}) imap.Greeting { return imap.Greeting{} })
	}
	rest := r.Rest
	sp := decodeSP(rest)
	if sp.Status != StatusConsumed {
		return mapResult(sp, func(struct{}) imap.Greeting { return imap.Greeting{} })
	}
	rest = sp.Rest

	kind, rest2, status, reason := decodeGreetingKind(rest)
	switch status {
	case StatusIncomplete:
		return Incomplete[imap.Greeting]()
	case StatusFailed:
		return Failed[imap.Greeting](reason)
	}
	rest = rest2

	codeData := rest
	if len(rest) >= 2 && rest[0] == ' ' && rest[1] == '[' {
		codeData = rest[1:]
	}
	code, codeArg, rest3, status, reason := decodeOptionalCode(codeData, q)
	switch status {
	case StatusIncomplete:
		return Incomplete[imap.Greeting]()
	case StatusFailed:
		return Failed[imap.Greeting](reason)
	}
	rest = rest3

	if len(rest) == 0 {
		return Incomplete[imap.Greeting]()
	}
	if rest[0] == ' ' {
		rest = rest[1:]
	} else if !q.MissingText {
		return Failed[imap.Greeting]("expected SP before greeting text")
	}

	txt := decodeText(rest, q)
	var text imap.Text
	switch txt.Status {
	case StatusConsumed:
		text = txt.Value
		rest = txt.Rest
	case StatusIncomplete:
		return Incomplete[imap.Greeting]()
	case StatusFailed:
		return Failed[imap.Greeting](txt.Reason)
	}

	crlf := decodeCRLF(rest, q)
	switch crlf.Status {
	case StatusIncomplete:
		return Incomplete[imap.Greeting]()
	case StatusFailed:
		return Failed[imap.Greeting](crlf.Reason)
	}

	return Consumed(imap.Greeting{Kind: kind, Code: code, CodeArg: codeArg, Text: text}, crlf.Rest)
}

func decodeGreetingKind(data []byte) (imap.GreetingKind, []byte, Status, string) {
	a := decodeAtomRaw(data)
	switch a.Status {
	case StatusIncomplete:
		return "", nil, StatusIncomplete, ""
	case StatusFailed:
		return "", nil, StatusFailed, a.Reason
	}
	switch strings.ToUpper(a.Value) {
	case "OK":
		return imap.GreetingOK, a.Rest, StatusConsumed, ""
	case "PREAUTH":
		return imap.GreetingPreAuth, a.Rest, StatusConsumed, ""
	case "BYE":
		return imap.GreetingBye, a.Rest, StatusConsumed, ""
	default:
		return "", nil, StatusFailed, "unknown greeting status " + a.Value
	}
}

// EncodeGreeting encodes a server greeting as a single line fragment.
func EncodeGreeting(g imap.Greeting) []Fragment {
	b := &builder{}
	b.writeString("* ")
	b.writeString(string(g.Kind))
	encodeOptionalCode(b, g.Code, g.CodeArg)
	if g.Text.String() != "" {
		b.writeByte(' ')
		b.writeString(g.Text.String())
	}
	b.writeString("\r\n")
	return b.fragments()
}
