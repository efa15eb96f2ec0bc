package wire

import (
	"encoding/base64"

	"github.com/corvidmail/imapcodec"
)

// DecodeAuthenticateData decodes one client line of a SASL challenge
// exchange following an AUTHENTICATE continuation request: either a
// bare "*" cancelling the exchange, or a base64-encoded response.
func DecodeAuthenticateData(data []byte, q Quirks) Result[imap.AuthenticateData] {
	if len(data) == 0 {
		return Incomplete[imap.AuthenticateData]()
	}
	if data[0] == '*' {
		crlf := decodeCRLF(data[1:], q)
		switch crlf.Status {
		case StatusIncomplete:
			return Incomplete[imap.AuthenticateData]()
		case StatusFailed:
			return Failed[imap.AuthenticateData](crlf.Reason)
		}
		return Consumed(imap.AuthenticateData{Cancel: true}, crlf.Rest)
	}

	line := decodeLine(data, q)
	switch line.Status {
	case StatusIncomplete:
		return Incomplete[imap.AuthenticateData]()
	case StatusFailed:
		return Failed[imap.AuthenticateData](line.Reason)
	}
	crlf := decodeCRLF(line.Rest, q)
	switch crlf.Status {
	case StatusIncomplete:
		return Incomplete[imap.AuthenticateData]()
	case StatusFailed:
		return Failed[imap.AuthenticateData](crlf.Reason)
	}
	raw, err := base64.StdEncoding.DecodeString(line.Value)
	if err != nil {
		return Failed[imap.AuthenticateData]("invalid base64 in SASL response")
	}
	return Consumed(imap.AuthenticateData{Base64: raw}, crlf.Rest)
}

// EncodeAuthenticateData encodes one client SASL exchange line.
func EncodeAuthenticateData(a imap.AuthenticateData) []Fragment {
	b := &builder{}
	if a.Cancel {
		b.writeByte('*')
	} else {
		b.writeString(base64.StdEncoding.EncodeToString(a.Base64))
	}
	b.writeString("\r\n")
	return b.fragments()
}

// DecodeIdleDone decodes the client's "DONE" line terminating an IDLE.
func DecodeIdleDone(data []byte, q Quirks) Result[imap.IdleDone] {
	const word = "DONE"
	if !hasPrefixFold(data, word) {
		return Failed[imap.IdleDone]("expected DONE")
	}
	if len(data) < len(word) {
		return Incomplete[imap.IdleDone]()
	}
	crlf := decodeCRLF(data[len(word):], q)
	switch crlf.Status {
	case StatusIncomplete:
		return Incomplete[imap.IdleDone]()
	case StatusFailed:
		return Failed[imap.IdleDone](crlf.Reason)
	}
	return Consumed(imap.IdleDone{}, crlf.Rest)
}

// EncodeIdleDone encodes the "DONE" line.
func EncodeIdleDone() []Fragment {
	return []Fragment{LineFragment([]byte("DONE\r\n"))}
}

// hasPrefixFold reports whether data starts with prefix, case-insensitively.
// If data is shorter than prefix, it reports whether data is itself a
// prefix of prefix (the caller treats that as "might still match, need
// more bytes" rather than a definite mismatch).
func hasPrefixFold(data []byte, prefix string) bool {
	n := len(data)
	if n > len(prefix) {
		n = len(prefix)
	}
	for i := 0; i < n; i++ {
		if toUpperByte(data[i]) != toUpperByte(prefix[i]) {
			return false
		}
	}
	return true
}

func toUpperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
