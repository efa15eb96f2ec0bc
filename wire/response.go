package wire

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/corvidmail/imapcodec"
)

// DecodeResponse decodes one server response line: a continuation
// request, a tagged or untagged status response, or an untagged data item.
func DecodeResponse(data []byte, q Quirks) Result[imap.Response] {
	if len(data) == 0 {
		return Incomplete[imap.Response]()
	}
	switch data[0] {
	case '+':
		return mapResult(decodeContinueRequest(data[1:], q), func(c imap.ContinueRequest) imap.Response {
			return imap.Response{Kind: imap.ResponseContinue, Continue: &c}
		})
	case '*':
		return decodeUntagged(data[1:], q)
	default:
		return decodeTaggedStatus(data, q)
	}
}

func decodeContinueRequest(data []byte, q Quirks) Result[imap.ContinueRequest] {
	if len(data) == 0 {
		return Incomplete[imap.ContinueRequest]()
	}
	rest := data
	if rest[0] == ' ' {
		rest = rest[1:]
	} else if !q.EmptyContinueReq {
		return Failed[imap.ContinueRequest]("expected SP after '+'")
	}
	txt := decodeLine(rest, q)
	switch txt.Status {
	case StatusIncomplete:
		return Incomplete[imap.ContinueRequest]()
	case StatusFailed:
		return Failed[imap.ContinueRequest](txt.Reason)
	}
	crlf := decodeCRLF(txt.Rest, q)
	switch crlf.Status {
	case StatusIncomplete:
		return Incomplete[imap.ContinueRequest]()
	case StatusFailed:
		return Failed[imap.ContinueRequest](crlf.Reason)
	}
	var t imap.Text
	if txt.Value != "" {
		parsed, err := imap.NewText(txt.Value)
		if err != nil {
			return Failed[imap.ContinueRequest](err.Error())
		}
		t = parsed
	}
	return Consumed(imap.ContinueRequest{Text: t}, crlf.Rest)
}

func decodeTaggedStatus(data []byte, q Quirks) Result[imap.Response] {
	tag := decodeTag(data)
	switch tag.Status {
	case StatusIncomplete:
		return Incomplete[imap.Response]()
	case StatusFailed:
		return Failed[imap.Response](tag.Reason)
	}
	sp := decodeSP(tag.Rest)
	switch sp.Status {
	case StatusIncomplete:
		return Incomplete[imap.Response]()
	case StatusFailed:
		return Failed[imap.Response](sp.Reason)
	}
	sr := decodeStatusTail(sp.Rest, q)
	switch sr.Status {
	case StatusIncomplete:
		return Incomplete[imap.Response]()
	case StatusFailed:
		return Failed[imap.Response](sr.Reason)
	}
	sr.Value.Tag = tag.Value
	sr.Value.Tagged = true
	return Consumed(imap.Response{Kind: imap.ResponseStatus, Status: &sr.Value}, sr.Rest)
}

func decodeUntagged(data []byte, q Quirks) Result[imap.Response] {
	sp := decodeSP(data)
	switch sp.Status {
	case StatusIncomplete:
		return Incomplete[imap.Response]()
	case StatusFailed:
		return Failed[imap.Response](sp.Reason)
	}
	rest := sp.Rest
	if len(rest) == 0 {
		return Incomplete[imap.Response]()
	}

	// "* <num> <word>" forms: EXISTS, RECENT, EXPUNGE, FETCH.
	if rest[0] >= '0' && rest[0] <= '9' {
		n := decodeNumber(rest)
		switch n.Status {
		case StatusIncomplete:
			return Incomplete[imap.Response]()
		case StatusFailed:
			return Failed[imap.Response](n.Reason)
		}
		sp2 := decodeSP(n.Rest)
		switch sp2.Status {
		case StatusIncomplete:
			return Incomplete[imap.Response]()
		case StatusFailed:
			return Failed[imap.Response](sp2.Reason)
		}
		word := decodeAtomRaw(sp2.Rest)
		switch word.Status {
		case StatusIncomplete:
			return Incomplete[imap.Response]()
		case StatusFailed:
			return Failed[imap.Response](word.Reason)
		}
		return decodeNumberedData(n.Value, strings.ToUpper(word.Value), word.Rest, q)
	}

	word := decodeAtomRaw(rest)
	switch word.Status {
	case StatusIncomplete:
		return Incomplete[imap.Response]()
	case StatusFailed:
		return Failed[imap.Response](word.Reason)
	}
	upper := strings.ToUpper(word.Value)
	switch upper {
	case "OK", "NO", "BAD", "PREAUTH", "BYE":
		sr := decodeStatusTailFromKind(upper, word.Rest, q)
		switch sr.Status {
		case StatusIncomplete:
			return Incomplete[imap.Response]()
		case StatusFailed:
			return Failed[imap.Response](sr.Reason)
		}
		return Consumed(imap.Response{Kind: imap.ResponseStatus, Status: &sr.Value}, sr.Rest)
	default:
		return decodeNamedData(upper, word.Rest, q)
	}
}

func decodeStatusTail(data []byte, q Quirks) Result[imap.StatusResponse] {
	word := decodeAtomRaw(data)
	switch word.Status {
	case StatusIncomplete:
		return Incomplete[imap.StatusResponse]()
	case StatusFailed:
		return Failed[imap.StatusResponse](word.Reason)
	}
	return decodeStatusTailFromKind(strings.ToUpper(word.Value), word.Rest, q)
}

func decodeStatusTailFromKind(kind string, rest []byte, q Quirks) Result[imap.StatusResponse] {
	var k imap.StatusKind
	switch kind {
	case "OK":
		k = imap.StatusOK
	case "NO":
		k = imap.StatusNo
	case "BAD":
		k = imap.StatusBad
	case "PREAUTH":
		k = imap.StatusPreAuth
	case "BYE":
		k = imap.StatusBye
	default:
		return Failed[imap.StatusResponse]("unknown status kind " + kind)
	}

	codeData := rest
	if len(rest) >= 2 && rest[0] == ' ' && rest[1] == '[' {
		codeData = rest[1:]
	}
	code, arg, rest2, status, reason := decodeOptionalCode(codeData, q)
	switch status {
	case StatusIncomplete:
		return Incomplete[imap.StatusResponse]()
	case StatusFailed:
		return Failed[imap.StatusResponse](reason)
	}
	rest = rest2

	text := imap.Text{}
	if len(rest) == 0 {
		return Incomplete[imap.StatusResponse]()
	}
	if rest[0] == ' ' {
		t := decodeText(rest[1:], q)
		switch t.Status {
		case StatusIncomplete:
			return Incomplete[imap.StatusResponse]()
		case StatusFailed:
			return Failed[imap.StatusResponse](t.Reason)
		}
		text = t.Value
		rest = t.Rest
	} else if !q.MissingText {
		return Failed[imap.StatusResponse]("expected SP before status text")
	}

	crlf := decodeCRLF(rest, q)
	switch crlf.Status {
	case StatusIncomplete:
		return Incomplete[imap.StatusResponse]()
	case StatusFailed:
		return Failed[imap.StatusResponse](crlf.Reason)
	}

	return Consumed(imap.StatusResponse{Kind: k, Code: code, CodeArg: arg, Text: text}, crlf.Rest)
}

func decodeNumberedData(n uint32, word string, rest []byte, q Quirks) Result[imap.Response] {
	switch word {
	case "EXISTS":
		crlf := decodeCRLF(rest, q)
		return finishData(imap.Data{Kind: imap.DataExists, Num: n}, crlf)
	case "RECENT":
		crlf := decodeCRLF(rest, q)
		return finishData(imap.Data{Kind: imap.DataRecent, Num: n}, crlf)
	case "EXPUNGE":
		crlf := decodeCRLF(rest, q)
		return finishData(imap.Data{Kind: imap.DataExpunge, ExpungeSeqNum: n}, crlf)
	case "FETCH":
		return decodeFetchData(n, rest, q)
	default:
		return Failed[imap.Response]("unknown numbered response data " + word)
	}
}

func finishData(d imap.Data, crlf Result[struct{}]) Result[imap.Response] {
	switch crlf.Status {
	case StatusIncomplete:
		return Incomplete[imap.Response]()
	case StatusFailed:
		return Failed[imap.Response](crlf.Reason)
	}
	return Consumed(imap.Response{Kind: imap.ResponseData, Data: &d}, crlf.Rest)
}

func decodeNamedData(word string, rest []byte, q Quirks) Result[imap.Response] {
	switch word {
	case "CAPABILITY":
		caps, rest2, status, reason := decodeCapList(rest)
		if status != StatusConsumed {
			return respStatus[imap.Response](status, reason)
		}
		crlf := decodeCRLF(rest2, q)
		return finishData(imap.Data{Kind: imap.DataCapability, Caps: caps}, crlf)
	case "FLAGS":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return respStatus[imap.Response](sp.Status, sp.Reason)
		}
		flags, rest2, status, reason := decodeFlagParenList(sp.Rest)
		if status != StatusConsumed {
			return respStatus[imap.Response](status, reason)
		}
		crlf := decodeCRLF(rest2, q)
		return finishData(imap.Data{Kind: imap.DataFlags, Flags: flags}, crlf)
	case "SEARCH":
		var nums []uint32
		cur := rest
		for {
			sp := decodeSP(cur)
			if sp.Status == StatusIncomplete {
				return Incomplete[imap.Response]()
			}
			if sp.Status != StatusConsumed {
				break
			}
			n := decodeNumber(sp.Rest)
			if n.Status == StatusIncomplete {
				return Incomplete[imap.Response]()
			}
			if n.Status != StatusConsumed {
				break
			}
			nums = append(nums, n.Value)
			cur = n.Rest
		}
		crlf := decodeCRLF(cur, q)
		return finishData(imap.Data{Kind: imap.DataSearch, SearchNums: nums}, crlf)
	case "ENABLED":
		caps, rest2, status, reason := decodeCapList(rest)
		if status != StatusConsumed {
			return respStatus[imap.Response](status, reason)
		}
		crlf := decodeCRLF(rest2, q)
		return finishData(imap.Data{Kind: imap.DataEnabled, EnabledCaps: caps}, crlf)
	case "ID":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return respStatus[imap.Response](sp.Status, sp.Reason)
		}
		params, rest2, status, reason := decodeIDParams(sp.Rest, q)
		if status != StatusConsumed {
			return respStatus[imap.Response](status, reason)
		}
		crlf := decodeCRLF(rest2, q)
		return finishData(imap.Data{Kind: imap.DataID, ID: params}, crlf)
	default:
		return Failed[imap.Response]("unsupported untagged response data " + word)
	}
}

func respStatus[T any](s Status, reason string) Result[T] {
	switch s {
	case StatusIncomplete:
		return Incomplete[T]()
	default:
		return Failed[T](reason)
	}
}

func decodeParenList(data []byte) ([]string, []byte, Status, string) {
	p := decodeByte(data, '(')
	if p.Status != StatusConsumed {
		return nil, nil, p.Status, p.Reason
	}
	var items []string
	rest := p.Rest
	first := true
	for {
		if len(rest) == 0 {
			return nil, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			return items, rest[1:], StatusConsumed, ""
		}
		if !first {
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				return nil, nil, sp.Status, sp.Reason
			}
			rest = sp.Rest
		}
		a := decodeAtomRaw(rest)
		if a.Status != StatusConsumed {
			return nil, nil, a.Status, a.Reason
		}
		items = append(items, a.Value)
		rest = a.Rest
		first = false
	}
}

// EncodeStatusResponse encodes a tagged or untagged status response.
func EncodeStatusResponse(r imap.StatusResponse) []Fragment {
	b := &builder{}
	if r.Tagged {
		b.writeString(r.Tag.String())
	} else {
		b.writeByte('*')
	}
	b.writeByte(' ')
	b.writeString(string(r.Kind))
	encodeOptionalCode(b, r.Code, r.CodeArg)
	if r.Text.String() != "" {
		b.writeByte(' ')
		b.writeString(r.Text.String())
	}
	b.writeString("\r\n")
	return b.fragments()
}

// EncodeContinueRequest encodes a `+` continuation line.
func EncodeContinueRequest(c imap.ContinueRequest) []Fragment {
	b := &builder{}
	b.writeByte('+')
	if c.HasBase64 {
		b.writeByte(' ')
		b.writeString(encodeBase64(c.Base64))
	} else if c.Text.String() != "" {
		b.writeByte(' ')
		b.writeString(c.Text.String())
	}
	b.writeString("\r\n")
	return b.fragments()
}

// EncodeData encodes one untagged data response.
func EncodeData(d imap.Data) []Fragment {
	b := &builder{}
	b.writeByte('*')
	switch d.Kind {
	case imap.DataExists, imap.DataRecent:
		b.writeByte(' ')
		b.writeString(strconv.FormatUint(uint64(d.Num), 10))
		b.writeByte(' ')
		b.writeString(string(d.Kind))
	case imap.DataExpunge:
		b.writeByte(' ')
		b.writeString(strconv.FormatUint(uint64(d.ExpungeSeqNum), 10))
		b.writeString(" EXPUNGE")
	case imap.DataCapability:
		b.writeString(" CAPABILITY")
		for _, c := range d.Caps {
			b.writeByte(' ')
			b.writeString(string(c))
		}
	case imap.DataFlags:
		b.writeString(" FLAGS (")
		for i, f := range d.Flags {
			if i > 0 {
				b.writeByte(' ')
			}
			b.writeString(string(f))
		}
		b.writeByte(')')
	case imap.DataSearch:
		b.writeString(" SEARCH")
		for _, n := range d.SearchNums {
			b.writeByte(' ')
			b.writeString(strconv.FormatUint(uint64(n), 10))
		}
	case imap.DataEnabled:
		b.writeString(" ENABLED")
		for _, c := range d.EnabledCaps {
			b.writeByte(' ')
			b.writeString(string(c))
		}
	case imap.DataID:
		b.writeString(" ID ")
		encodeIDParams(b, d.ID, len(d.ID.Fields) > 0)
	case imap.DataFetch:
		encodeFetchData(b, d.FetchSeqNum, d.FetchItems)
	}
	b.writeString("\r\n")
	return b.fragments()
}

// EncodeGreeting wraps a greeting in an encoded response; defined in
// greeting.go.

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
