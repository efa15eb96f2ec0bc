package wire

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/corvidmail/imapcodec"
)

// decodeFetchData decodes a FETCH response's parenthesised data-item list
// into the already-modeled imap.FetchDataItem values, then confirms the
// trailing CRLF. Used by decodeNumberedData's "FETCH" case.
func decodeFetchData(n uint32, rest []byte, q Quirks) Result[imap.Response] {
	sp := decodeSP(rest)
	if sp.Status != StatusConsumed {
		return respStatus[imap.Response](sp.Status, sp.Reason)
	}
	items, rest2, status, reason := decodeFetchDataItems(sp.Rest, q)
	if status != StatusConsumed {
		return respStatus[imap.Response](status, reason)
	}
	crlf := decodeCRLF(rest2, q)
	return finishData(imap.Data{Kind: imap.DataFetch, FetchSeqNum: n, FetchItems: items}, crlf)
}

func decodeFetchDataItems(data []byte, q Quirks) ([]imap.FetchDataItem, []byte, Status, string) {
	p := decodeByte(data, '(')
	if p.Status != StatusConsumed {
		return nil, nil, p.Status, p.Reason
	}
	var items []imap.FetchDataItem
	rest := p.Rest
	first := true
	for {
		if len(rest) == 0 {
			return nil, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			if len(items) == 0 {
				return nil, nil, StatusFailed, "FETCH data must not be empty"
			}
			return items, rest[1:], StatusConsumed, ""
		}
		if !first {
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				return nil, nil, sp.Status, sp.Reason
			}
			rest = sp.Rest
		}
		item, rest2, status, reason := decodeFetchDataItem(rest, q)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		items = append(items, item)
		rest = rest2
		first = false
	}
}

func decodeFetchDataItem(data []byte, q Quirks) (imap.FetchDataItem, []byte, Status, string) {
	word := decodeFetchAttWord(data)
	if word.Status != StatusConsumed {
		return imap.FetchDataItem{}, nil, word.Status, word.Reason
	}
	upper := strings.ToUpper(word.Value)
	rest := word.Rest

	switch upper {
	case "FLAGS":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		flags, rest2, status, reason := decodeFlagParenList(sp.Rest)
		if status != StatusConsumed {
			return imap.FetchDataItem{}, nil, status, reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataFlags, Flags: flags}, rest2, StatusConsumed, ""

	case "UID":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		num := decodeNumber(sp.Rest)
		if num.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, num.Status, num.Reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataUID, UID: imap.UID(num.Value)}, num.Rest, StatusConsumed, ""

	case "RFC822.SIZE":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		num := decodeNumber(sp.Rest)
		if num.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, num.Status, num.Reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataRFC822Size, RFC822Size: num.Value}, num.Rest, StatusConsumed, ""

	case "INTERNALDATE":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		qs := decodeQuotedString(sp.Rest)
		if qs.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, qs.Status, qs.Reason
		}
		d, err := imap.ParseInternalDate(qs.Value.String())
		if err != nil {
			return imap.FetchDataItem{}, nil, StatusFailed, err.Error()
		}
		return imap.FetchDataItem{Kind: imap.FetchDataInternalDate, InternalDate: d}, qs.Rest, StatusConsumed, ""

	case "MODSEQ":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		p := decodeByte(sp.Rest, '(')
		if p.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, p.Status, p.Reason
		}
		num := decodeNumber64(p.Rest)
		if num.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, num.Status, num.Reason
		}
		c := decodeByte(num.Rest, ')')
		if c.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, c.Status, c.Reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataModSeq, ModSeq: num.Value}, c.Rest, StatusConsumed, ""

	case "ENVELOPE":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		env, rest2, status, reason := decodeEnvelope(sp.Rest, q)
		if status != StatusConsumed {
			return imap.FetchDataItem{}, nil, status, reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataEnvelope, Envelope: &env}, rest2, StatusConsumed, ""

	case "BODYSTRUCTURE":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		bs, rest2, status, reason := decodeBodyStructure(sp.Rest, q, true, 0)
		if status != StatusConsumed {
			return imap.FetchDataItem{}, nil, status, reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataBodyStructure, BodyStructure: &bs}, rest2, StatusConsumed, ""

	case "BODY":
		if len(rest) > 0 && rest[0] == '[' {
			spec, rest2, status, reason := decodeBodySection(rest, q)
			if status != StatusConsumed {
				return imap.FetchDataItem{}, nil, status, reason
			}
			return decodeFetchBodySectionPayload(spec, rest2, q)
		}
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		bs, rest2, status, reason := decodeBodyStructure(sp.Rest, q, false, 0)
		if status != StatusConsumed {
			return imap.FetchDataItem{}, nil, status, reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataBody, BodyStructure: &bs}, rest2, StatusConsumed, ""

	case "PREVIEW":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		ns := decodeNString(sp.Rest, q)
		if ns.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, ns.Status, ns.Reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataPreview, Preview: ns.Value}, ns.Rest, StatusConsumed, ""

	case "SAVEDATE":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		ns := decodeNString(sp.Rest, q)
		if ns.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, ns.Status, ns.Reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataSaveDate, SaveDate: ns.Value}, ns.Rest, StatusConsumed, ""

	case "EMAILID":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		id, rest2, status, reason := decodeObjectID(sp.Rest, q)
		if status != StatusConsumed {
			return imap.FetchDataItem{}, nil, status, reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataEmailID, EmailID: id}, rest2, StatusConsumed, ""

	case "THREADID":
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
		}
		id, rest2, status, reason := decodeObjectID(sp.Rest, q)
		if status != StatusConsumed {
			return imap.FetchDataItem{}, nil, status, reason
		}
		return imap.FetchDataItem{Kind: imap.FetchDataThreadID, ThreadID: id}, rest2, StatusConsumed, ""

	default:
		return imap.FetchDataItem{}, nil, StatusFailed, "unsupported FETCH data item " + upper
	}
}

// decodeFetchBodySectionPayload decodes the trailing "<origin> SP nstring"
// of a BODY[section] FETCH response data item, once the section-spec
// itself has already been consumed.
func decodeFetchBodySectionPayload(spec imap.BodySectionSpecifier, rest []byte, q Quirks) (imap.FetchDataItem, []byte, Status, string) {
	if len(rest) > 0 && rest[0] == '<' {
		origin := decodeNumberRaw(rest[1:])
		if origin.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, origin.Status, origin.Reason
		}
		c := decodeByte(origin.Rest, '>')
		if c.Status != StatusConsumed {
			return imap.FetchDataItem{}, nil, c.Status, c.Reason
		}
		rest = c.Rest
	}
	sp := decodeSP(rest)
	if sp.Status != StatusConsumed {
		return imap.FetchDataItem{}, nil, sp.Status, sp.Reason
	}
	ns := decodeNString(sp.Rest, q)
	if ns.Status != StatusConsumed {
		return imap.FetchDataItem{}, nil, ns.Status, ns.Reason
	}
	item := imap.FetchDataItem{Kind: imap.FetchDataBodySection, Section: &spec}
	if !imap.IsNil(ns.Value) {
		if is, ok := ns.Value.(imap.IString); ok {
			if lit, ok := is.(imap.Literal); ok {
				item.Literal = lit
			} else {
				item.Literal, _ = imap.NewLiteral([]byte(istringText(is)), imap.LiteralSync)
			}
			item.HasLiteral = true
		}
	}
	return item, ns.Rest, StatusConsumed, ""
}

// decodeObjectID decodes an RFC 8474 objectid: a parenthesised, quoted
// opaque identifier, e.g. EMAILID's `("M0123456789abcdef")`. THREADID may
// additionally be the bare atom NIL (a message with no thread); EMAILID's
// grammar never admits NIL, but accepting it on decode here costs nothing
// and keeps this one helper shared between both fetch data items.
func decodeObjectID(data []byte, q Quirks) (string, []byte, Status, string) {
	if len(data) > 0 && (data[0] == 'N' || data[0] == 'n') {
		n := decodeAtomRaw(data)
		if n.Status == StatusConsumed && strings.EqualFold(n.Value, "NIL") {
			return "", n.Rest, StatusConsumed, ""
		}
	}
	p := decodeByte(data, '(')
	if p.Status != StatusConsumed {
		return "", nil, p.Status, p.Reason
	}
	s := decodeAString(p.Rest, q)
	if s.Status != StatusConsumed {
		return "", nil, s.Status, s.Reason
	}
	c := decodeByte(s.Rest, ')')
	if c.Status != StatusConsumed {
		return "", nil, c.Status, c.Reason
	}
	return imap.AStringText(s.Value), c.Rest, StatusConsumed, ""
}

func nstringText(n imap.NString) string {
	if imap.IsNil(n) {
		return ""
	}
	if is, ok := n.(imap.IString); ok {
		return istringText(is)
	}
	return ""
}

// decodeEnvelope decodes the ENVELOPE fetch data item (§3): nine
// parenthesised fields, six of them address lists.
func decodeEnvelope(data []byte, q Quirks) (imap.Envelope, []byte, Status, string) {
	p := decodeByte(data, '(')
	if p.Status != StatusConsumed {
		return imap.Envelope{}, nil, p.Status, p.Reason
	}
	rest := p.Rest
	var env imap.Envelope

	date := decodeNString(rest, q)
	if date.Status != StatusConsumed {
		return imap.Envelope{}, nil, date.Status, date.Reason
	}
	if !imap.IsNil(date.Value) {
		env.HasDate = true
		env.DateText = nstringText(date.Value)
		if t, err := parseEnvelopeDate(env.DateText); err == nil {
			env.Date = t
		}
	}
	rest = date.Rest

	sp := decodeSP(rest)
	if sp.Status != StatusConsumed {
		return imap.Envelope{}, nil, sp.Status, sp.Reason
	}
	subj := decodeNString(sp.Rest, q)
	if subj.Status != StatusConsumed {
		return imap.Envelope{}, nil, subj.Status, subj.Reason
	}
	env.Subject = nstringText(subj.Value)
	rest = subj.Rest

	for _, dst := range []*[]imap.Address{&env.From, &env.Sender, &env.ReplyTo, &env.To, &env.Cc, &env.Bcc} {
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.Envelope{}, nil, sp.Status, sp.Reason
		}
		addrs, rest2, status, reason := decodeAddressList(sp.Rest, q)
		if status != StatusConsumed {
			return imap.Envelope{}, nil, status, reason
		}
		*dst = addrs
		rest = rest2
	}

	sp = decodeSP(rest)
	if sp.Status != StatusConsumed {
		return imap.Envelope{}, nil, sp.Status, sp.Reason
	}
	irt := decodeNString(sp.Rest, q)
	if irt.Status != StatusConsumed {
		return imap.Envelope{}, nil, irt.Status, irt.Reason
	}
	env.InReplyTo = nstringText(irt.Value)
	rest = irt.Rest

	sp = decodeSP(rest)
	if sp.Status != StatusConsumed {
		return imap.Envelope{}, nil, sp.Status, sp.Reason
	}
	mid := decodeNString(sp.Rest, q)
	if mid.Status != StatusConsumed {
		return imap.Envelope{}, nil, mid.Status, mid.Reason
	}
	env.MessageID = nstringText(mid.Value)
	rest = mid.Rest

	c := decodeByte(rest, ')')
	if c.Status != StatusConsumed {
		return imap.Envelope{}, nil, c.Status, c.Reason
	}
	return env, c.Rest, StatusConsumed, ""
}

// parseEnvelopeDate best-effort parses an RFC 2822 date-time, tolerating
// the free-form trailing zone-name comment (e.g. "(PDT)") that time.Parse
// rejects. The exact wire text always survives separately in
// Envelope.DateText, since this parse is informational only.
func parseEnvelopeDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasSuffix(trimmed, ")") {
		if idx := strings.LastIndexByte(trimmed, '('); idx != -1 {
			trimmed = strings.TrimSpace(trimmed[:idx])
		}
	}
	layouts := []string{
		"Mon, 02 Jan 2006 15:04:05 -0700",
		"02 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"2 Jan 2006 15:04:05 -0700",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognised envelope date format")
}

func decodeAddressList(data []byte, q Quirks) ([]imap.Address, []byte, Status, string) {
	if len(data) == 0 {
		return nil, nil, StatusIncomplete, ""
	}
	if data[0] != '(' {
		n := decodeAtomRaw(data)
		if n.Status != StatusConsumed {
			return nil, nil, n.Status, n.Reason
		}
		if !strings.EqualFold(n.Value, "NIL") {
			return nil, nil, StatusFailed, "expected address list or NIL"
		}
		return nil, n.Rest, StatusConsumed, ""
	}
	rest := data[1:]
	var addrs []imap.Address
	for {
		if len(rest) == 0 {
			return nil, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			if len(addrs) == 0 {
				return nil, nil, StatusFailed, "address list must not be empty"
			}
			return addrs, rest[1:], StatusConsumed, ""
		}
		addr, rest2, status, reason := decodeAddress(rest, q)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		addrs = append(addrs, addr)
		rest = rest2
	}
}

func decodeAddress(data []byte, q Quirks) (imap.Address, []byte, Status, string) {
	p := decodeByte(data, '(')
	if p.Status != StatusConsumed {
		return imap.Address{}, nil, p.Status, p.Reason
	}
	name := decodeNString(p.Rest, q)
	if name.Status != StatusConsumed {
		return imap.Address{}, nil, name.Status, name.Reason
	}
	sp := decodeSP(name.Rest)
	if sp.Status != StatusConsumed {
		return imap.Address{}, nil, sp.Status, sp.Reason
	}
	adl := decodeNString(sp.Rest, q)
	if adl.Status != StatusConsumed {
		return imap.Address{}, nil, adl.Status, adl.Reason
	}
	sp = decodeSP(adl.Rest)
	if sp.Status != StatusConsumed {
		return imap.Address{}, nil, sp.Status, sp.Reason
	}
	mbox := decodeNString(sp.Rest, q)
	if mbox.Status != StatusConsumed {
		return imap.Address{}, nil, mbox.Status, mbox.Reason
	}
	sp = decodeSP(mbox.Rest)
	if sp.Status != StatusConsumed {
		return imap.Address{}, nil, sp.Status, sp.Reason
	}
	host := decodeNString(sp.Rest, q)
	if host.Status != StatusConsumed {
		return imap.Address{}, nil, host.Status, host.Reason
	}
	c := decodeByte(host.Rest, ')')
	if c.Status != StatusConsumed {
		return imap.Address{}, nil, c.Status, c.Reason
	}
	addr := imap.Address{
		Name:         nstringText(name.Value),
		AtDomainList: nstringText(adl.Value),
		Mailbox:      nstringText(mbox.Value),
		Host:         nstringText(host.Value),
	}
	return addr, c.Rest, StatusConsumed, ""
}

// decodeBodyStructure decodes a full "(" body-type-1part/mpart ")"
// production, recursively. extended selects whether body-ext-1part/mpart
// trailing fields are parsed (BODYSTRUCTURE) or ignored (plain BODY).
// depth is bounded by imap.MaxBodyStructureDepth to keep a hostile or
// buggy peer from driving the parser into unbounded recursion.
func decodeBodyStructure(data []byte, q Quirks, extended bool, depth int) (imap.BodyStructure, []byte, Status, string) {
	if depth > imap.MaxBodyStructureDepth {
		return imap.BodyStructure{}, nil, StatusFailed, "body structure exceeds max nesting depth"
	}
	p := decodeByte(data, '(')
	if p.Status != StatusConsumed {
		return imap.BodyStructure{}, nil, p.Status, p.Reason
	}
	var bs imap.BodyStructure
	var rest []byte
	var status Status
	var reason string
	if len(p.Rest) > 0 && p.Rest[0] == '(' {
		bs, rest, status, reason = decodeMultipartBody(p.Rest, q, extended, depth)
	} else {
		bs, rest, status, reason = decodeSinglePartBody(p.Rest, q, extended, depth)
	}
	if status != StatusConsumed {
		return imap.BodyStructure{}, nil, status, reason
	}
	c := decodeByte(rest, ')')
	if c.Status != StatusConsumed {
		return imap.BodyStructure{}, nil, c.Status, c.Reason
	}
	return bs, c.Rest, StatusConsumed, ""
}

func decodeMultipartBody(data []byte, q Quirks, extended bool, depth int) (imap.BodyStructure, []byte, Status, string) {
	var children []imap.BodyStructure
	rest := data
	for len(rest) > 0 && rest[0] == '(' {
		child, rest2, status, reason := decodeBodyStructure(rest, q, extended, depth+1)
		if status != StatusConsumed {
			return imap.BodyStructure{}, nil, status, reason
		}
		children = append(children, child)
		rest = rest2
	}
	if len(children) == 0 {
		return imap.BodyStructure{}, nil, StatusFailed, "multipart body requires at least one part"
	}
	sp := decodeSP(rest)
	if sp.Status != StatusConsumed {
		return imap.BodyStructure{}, nil, sp.Status, sp.Reason
	}
	subtype := decodeIString(sp.Rest, q)
	if subtype.Status != StatusConsumed {
		return imap.BodyStructure{}, nil, subtype.Status, subtype.Reason
	}
	bs := imap.BodyStructure{Type: "multipart", Subtype: istringText(subtype.Value), Children: children}
	rest = subtype.Rest

	if extended && len(rest) > 0 && rest[0] == ' ' {
		ext, rest2, status, reason := decodeBodyExtMpart(rest[1:], q)
		if status != StatusConsumed {
			return imap.BodyStructure{}, nil, status, reason
		}
		bs.Extended = true
		bs.Params = ext.params
		bs.HasDisposition = ext.hasDisp
		bs.DispositionType = ext.dispType
		bs.DispositionParams = ext.dispParams
		bs.Language = ext.language
		bs.HasLocation = ext.hasLocation
		bs.Location = ext.location
		bs.TrailingExtensions = ext.trailing
		rest = rest2
	}
	return bs, rest, StatusConsumed, ""
}

func decodeSinglePartBody(data []byte, q Quirks, extended bool, depth int) (imap.BodyStructure, []byte, Status, string) {
	typ := decodeIString(data, q)
	if typ.Status != StatusConsumed {
		return imap.BodyStructure{}, nil, typ.Status, typ.Reason
	}
	sp := decodeSP(typ.Rest)
	if sp.Status != StatusConsumed {
		return imap.BodyStructure{}, nil, sp.Status, sp.Reason
	}
	subtype := decodeIString(sp.Rest, q)
	if subtype.Status != StatusConsumed {
		return imap.BodyStructure{}, nil, subtype.Status, subtype.Reason
	}
	bs := imap.BodyStructure{Type: istringText(typ.Value), Subtype: istringText(subtype.Value)}
	rest := subtype.Rest

	sp2 := decodeSP(rest)
	if sp2.Status != StatusConsumed {
		return imap.BodyStructure{}, nil, sp2.Status, sp2.Reason
	}
	fields, rest2, status, reason := decodeBodyFields(sp2.Rest, q)
	if status != StatusConsumed {
		return imap.BodyStructure{}, nil, status, reason
	}
	bs.Params = fields.params
	bs.ID = fields.id
	bs.HasID = fields.hasID
	bs.Description = fields.desc
	bs.HasDescription = fields.hasDesc
	bs.Encoding = fields.encoding
	bs.Size = fields.size
	rest = rest2

	switch {
	case strings.EqualFold(bs.Type, "message") && strings.EqualFold(bs.Subtype, "rfc822"):
		sp3 := decodeSP(rest)
		if sp3.Status != StatusConsumed {
			return imap.BodyStructure{}, nil, sp3.Status, sp3.Reason
		}
		env, rest3, status, reason := decodeEnvelope(sp3.Rest, q)
		if status != StatusConsumed {
			return imap.BodyStructure{}, nil, status, reason
		}
		bs.Envelope = &env
		rest = rest3

		sp4 := decodeSP(rest)
		if sp4.Status != StatusConsumed {
			return imap.BodyStructure{}, nil, sp4.Status, sp4.Reason
		}
		child, rest4, status, reason := decodeBodyStructure(sp4.Rest, q, extended, depth+1)
		if status != StatusConsumed {
			return imap.BodyStructure{}, nil, status, reason
		}
		bs.BodyStructure = &child
		rest = rest4

		sp5 := decodeSP(rest)
		if sp5.Status != StatusConsumed {
			return imap.BodyStructure{}, nil, sp5.Status, sp5.Reason
		}
		lines := decodeNumber(sp5.Rest)
		if lines.Status != StatusConsumed {
			return imap.BodyStructure{}, nil, lines.Status, lines.Reason
		}
		bs.HasLines = true
		bs.Lines = lines.Value
		rest = lines.Rest

	case strings.EqualFold(bs.Type, "text"):
		sp3 := decodeSP(rest)
		if sp3.Status != StatusConsumed {
			return imap.BodyStructure{}, nil, sp3.Status, sp3.Reason
		}
		lines := decodeNumber(sp3.Rest)
		if lines.Status != StatusConsumed {
			return imap.BodyStructure{}, nil, lines.Status, lines.Reason
		}
		bs.HasLines = true
		bs.Lines = lines.Value
		rest = lines.Rest
	}

	if extended && len(rest) > 0 && rest[0] == ' ' {
		ext, rest2, status, reason := decodeBodyExt1part(rest[1:], q)
		if status != StatusConsumed {
			return imap.BodyStructure{}, nil, status, reason
		}
		bs.Extended = true
		bs.HasMD5 = ext.hasMD5
		bs.MD5 = ext.md5
		bs.HasDisposition = ext.hasDisp
		bs.DispositionType = ext.dispType
		bs.DispositionParams = ext.dispParams
		bs.Language = ext.language
		bs.HasLocation = ext.hasLocation
		bs.Location = ext.location
		bs.TrailingExtensions = ext.trailing
		rest = rest2
	}
	return bs, rest, StatusConsumed, ""
}

type bodyFieldsResult struct {
	params   map[string]string
	id       string
	hasID    bool
	desc     string
	hasDesc  bool
	encoding string
	size     uint32
}

// decodeBodyFields decodes body-fields: params, id, description, encoding,
// octet count, in that order.
func decodeBodyFields(data []byte, q Quirks) (bodyFieldsResult, []byte, Status, string) {
	params, rest, status, reason := decodeBodyParamList(data, q)
	if status != StatusConsumed {
		return bodyFieldsResult{}, nil, status, reason
	}
	sp := decodeSP(rest)
	if sp.Status != StatusConsumed {
		return bodyFieldsResult{}, nil, sp.Status, sp.Reason
	}
	id := decodeNString(sp.Rest, q)
	if id.Status != StatusConsumed {
		return bodyFieldsResult{}, nil, id.Status, id.Reason
	}
	sp = decodeSP(id.Rest)
	if sp.Status != StatusConsumed {
		return bodyFieldsResult{}, nil, sp.Status, sp.Reason
	}
	desc := decodeNString(sp.Rest, q)
	if desc.Status != StatusConsumed {
		return bodyFieldsResult{}, nil, desc.Status, desc.Reason
	}
	sp = decodeSP(desc.Rest)
	if sp.Status != StatusConsumed {
		return bodyFieldsResult{}, nil, sp.Status, sp.Reason
	}
	enc := decodeIString(sp.Rest, q)
	if enc.Status != StatusConsumed {
		return bodyFieldsResult{}, nil, enc.Status, enc.Reason
	}
	sp = decodeSP(enc.Rest)
	if sp.Status != StatusConsumed {
		return bodyFieldsResult{}, nil, sp.Status, sp.Reason
	}
	size := decodeNumber(sp.Rest)
	if size.Status != StatusConsumed {
		return bodyFieldsResult{}, nil, size.Status, size.Reason
	}
	return bodyFieldsResult{
		params:   params,
		id:       nstringText(id.Value),
		hasID:    !imap.IsNil(id.Value),
		desc:     nstringText(desc.Value),
		hasDesc:  !imap.IsNil(desc.Value),
		encoding: istringText(enc.Value),
		size:     size.Value,
	}, size.Rest, StatusConsumed, ""
}

// decodeBodyParamList decodes body-fld-param: "(" 1*(string SP string) ")"
// or NIL.
func decodeBodyParamList(data []byte, q Quirks) (map[string]string, []byte, Status, string) {
	if len(data) == 0 {
		return nil, nil, StatusIncomplete, ""
	}
	if data[0] != '(' {
		n := decodeAtomRaw(data)
		if n.Status != StatusConsumed {
			return nil, nil, n.Status, n.Reason
		}
		if !strings.EqualFold(n.Value, "NIL") {
			return nil, nil, StatusFailed, "expected parameter list or NIL"
		}
		return nil, n.Rest, StatusConsumed, ""
	}
	rest := data[1:]
	params := map[string]string{}
	first := true
	for {
		if len(rest) == 0 {
			return nil, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			return params, rest[1:], StatusConsumed, ""
		}
		if !first {
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				return nil, nil, sp.Status, sp.Reason
			}
			rest = sp.Rest
		}
		key := decodeIString(rest, q)
		if key.Status != StatusConsumed {
			return nil, nil, key.Status, key.Reason
		}
		sp := decodeSP(key.Rest)
		if sp.Status != StatusConsumed {
			return nil, nil, sp.Status, sp.Reason
		}
		val := decodeIString(sp.Rest, q)
		if val.Status != StatusConsumed {
			return nil, nil, val.Status, val.Reason
		}
		params[istringText(key.Value)] = istringText(val.Value)
		rest = val.Rest
		first = false
	}
}

type dispResult struct {
	has    bool
	typ    string
	params map[string]string
}

// decodeBodyFldDsp decodes body-fld-dsp: "(" string SP body-fld-param ")"
// or NIL.
func decodeBodyFldDsp(data []byte, q Quirks) (dispResult, []byte, Status, string) {
	if len(data) == 0 {
		return dispResult{}, nil, StatusIncomplete, ""
	}
	if data[0] != '(' {
		n := decodeAtomRaw(data)
		if n.Status != StatusConsumed {
			return dispResult{}, nil, n.Status, n.Reason
		}
		if !strings.EqualFold(n.Value, "NIL") {
			return dispResult{}, nil, StatusFailed, "expected disposition or NIL"
		}
		return dispResult{}, n.Rest, StatusConsumed, ""
	}
	typ := decodeIString(data[1:], q)
	if typ.Status != StatusConsumed {
		return dispResult{}, nil, typ.Status, typ.Reason
	}
	sp := decodeSP(typ.Rest)
	if sp.Status != StatusConsumed {
		return dispResult{}, nil, sp.Status, sp.Reason
	}
	params, rest2, status, reason := decodeBodyParamList(sp.Rest, q)
	if status != StatusConsumed {
		return dispResult{}, nil, status, reason
	}
	c := decodeByte(rest2, ')')
	if c.Status != StatusConsumed {
		return dispResult{}, nil, c.Status, c.Reason
	}
	return dispResult{has: true, typ: istringText(typ.Value), params: params}, c.Rest, StatusConsumed, ""
}

// decodeBodyFldLang decodes body-fld-lang: nstring, or "(" string
// *(SP string) ")".
func decodeBodyFldLang(data []byte, q Quirks) ([]string, []byte, Status, string) {
	if len(data) == 0 {
		return nil, nil, StatusIncomplete, ""
	}
	if data[0] == '(' {
		rest := data[1:]
		var langs []string
		first := true
		for {
			if len(rest) == 0 {
				return nil, nil, StatusIncomplete, ""
			}
			if rest[0] == ')' {
				return langs, rest[1:], StatusConsumed, ""
			}
			if !first {
				sp := decodeSP(rest)
				if sp.Status != StatusConsumed {
					return nil, nil, sp.Status, sp.Reason
				}
				rest = sp.Rest
			}
			s := decodeIString(rest, q)
			if s.Status != StatusConsumed {
				return nil, nil, s.Status, s.Reason
			}
			langs = append(langs, istringText(s.Value))
			rest = s.Rest
			first = false
		}
	}
	n := decodeNString(data, q)
	if n.Status != StatusConsumed {
		return nil, nil, n.Status, n.Reason
	}
	if imap.IsNil(n.Value) {
		return nil, n.Rest, StatusConsumed, ""
	}
	return []string{nstringText(n.Value)}, n.Rest, StatusConsumed, ""
}

type bodyExt1 struct {
	hasMD5      bool
	md5         string
	hasDisp     bool
	dispType    string
	dispParams  map[string]string
	language    []string
	hasLocation bool
	location    string
	trailing    []imap.BodyExtension
}

// decodeBodyExt1part decodes body-ext-1part, the nested-optional trailing
// fields of a non-multipart BODYSTRUCTURE node: md5, then disposition,
// then language, then location, then vendor extensions. Each field is
// present only if every field before it is too.
func decodeBodyExt1part(data []byte, q Quirks) (bodyExt1, []byte, Status, string) {
	var ext bodyExt1
	md5 := decodeNString(data, q)
	if md5.Status != StatusConsumed {
		return bodyExt1{}, nil, md5.Status, md5.Reason
	}
	if !imap.IsNil(md5.Value) {
		ext.hasMD5 = true
		ext.md5 = nstringText(md5.Value)
	}
	rest := md5.Rest
	if len(rest) == 0 || rest[0] != ' ' {
		return ext, rest, StatusConsumed, ""
	}
	dsp, rest2, status, reason := decodeBodyFldDsp(rest[1:], q)
	if status != StatusConsumed {
		return bodyExt1{}, nil, status, reason
	}
	ext.hasDisp, ext.dispType, ext.dispParams = dsp.has, dsp.typ, dsp.params
	rest = rest2
	if len(rest) == 0 || rest[0] != ' ' {
		return ext, rest, StatusConsumed, ""
	}
	lang, rest2, status, reason := decodeBodyFldLang(rest[1:], q)
	if status != StatusConsumed {
		return bodyExt1{}, nil, status, reason
	}
	ext.language = lang
	rest = rest2
	if len(rest) == 0 || rest[0] != ' ' {
		return ext, rest, StatusConsumed, ""
	}
	loc := decodeNString(rest[1:], q)
	if loc.Status != StatusConsumed {
		return bodyExt1{}, nil, loc.Status, loc.Reason
	}
	if !imap.IsNil(loc.Value) {
		ext.hasLocation = true
		ext.location = nstringText(loc.Value)
	}
	rest = loc.Rest
	for len(rest) > 0 && rest[0] == ' ' {
		be, rest2, status, reason := decodeBodyExtension(rest[1:], q, 0)
		if status != StatusConsumed {
			return bodyExt1{}, nil, status, reason
		}
		ext.trailing = append(ext.trailing, be)
		rest = rest2
	}
	return ext, rest, StatusConsumed, ""
}

type bodyExtMP struct {
	params      map[string]string
	hasDisp     bool
	dispType    string
	dispParams  map[string]string
	language    []string
	hasLocation bool
	location    string
	trailing    []imap.BodyExtension
}

// decodeBodyExtMpart decodes body-ext-mpart: the same nested-optional tail
// as body-ext-1part, but anchored on the multipart's own Content-Type
// parameters (e.g. "boundary") instead of an md5 field.
func decodeBodyExtMpart(data []byte, q Quirks) (bodyExtMP, []byte, Status, string) {
	params, rest, status, reason := decodeBodyParamList(data, q)
	if status != StatusConsumed {
		return bodyExtMP{}, nil, status, reason
	}
	ext := bodyExtMP{params: params}
	if len(rest) == 0 || rest[0] != ' ' {
		return ext, rest, StatusConsumed, ""
	}
	dsp, rest2, status, reason := decodeBodyFldDsp(rest[1:], q)
	if status != StatusConsumed {
		return bodyExtMP{}, nil, status, reason
	}
	ext.hasDisp, ext.dispType, ext.dispParams = dsp.has, dsp.typ, dsp.params
	rest = rest2
	if len(rest) == 0 || rest[0] != ' ' {
		return ext, rest, StatusConsumed, ""
	}
	lang, rest2, status, reason := decodeBodyFldLang(rest[1:], q)
	if status != StatusConsumed {
		return bodyExtMP{}, nil, status, reason
	}
	ext.language = lang
	rest = rest2
	if len(rest) == 0 || rest[0] != ' ' {
		return ext, rest, StatusConsumed, ""
	}
	loc := decodeNString(rest[1:], q)
	if loc.Status != StatusConsumed {
		return bodyExtMP{}, nil, loc.Status, loc.Reason
	}
	if !imap.IsNil(loc.Value) {
		ext.hasLocation = true
		ext.location = nstringText(loc.Value)
	}
	rest = loc.Rest
	for len(rest) > 0 && rest[0] == ' ' {
		be, rest2, status, reason := decodeBodyExtension(rest[1:], q, 0)
		if status != StatusConsumed {
			return bodyExtMP{}, nil, status, reason
		}
		ext.trailing = append(ext.trailing, be)
		rest = rest2
	}
	return ext, rest, StatusConsumed, ""
}

// decodeBodyExtension decodes one body-extension: nstring, number, or a
// parenthesised list of further extensions, recursively. depth guards
// against unbounded recursion the same way decodeBodyStructure's does.
func decodeBodyExtension(data []byte, q Quirks, depth int) (imap.BodyExtension, []byte, Status, string) {
	if depth > imap.MaxBodyStructureDepth {
		return imap.BodyExtension{}, nil, StatusFailed, "body extension exceeds max nesting depth"
	}
	if len(data) == 0 {
		return imap.BodyExtension{}, nil, StatusIncomplete, ""
	}
	if data[0] == '(' {
		rest := data[1:]
		var list []imap.BodyExtension
		first := true
		for {
			if len(rest) == 0 {
				return imap.BodyExtension{}, nil, StatusIncomplete, ""
			}
			if rest[0] == ')' {
				return imap.BodyExtension{List: list}, rest[1:], StatusConsumed, ""
			}
			if !first {
				sp := decodeSP(rest)
				if sp.Status != StatusConsumed {
					return imap.BodyExtension{}, nil, sp.Status, sp.Reason
				}
				rest = sp.Rest
			}
			be, rest2, status, reason := decodeBodyExtension(rest, q, depth+1)
			if status != StatusConsumed {
				return imap.BodyExtension{}, nil, status, reason
			}
			list = append(list, be)
			rest = rest2
			first = false
		}
	}
	if data[0] >= '0' && data[0] <= '9' {
		n := decodeNumberRaw(data)
		if n.Status != StatusConsumed {
			return imap.BodyExtension{}, nil, n.Status, n.Reason
		}
		return imap.BodyExtension{HasNumber: true, Number: uint32(n.Value)}, n.Rest, StatusConsumed, ""
	}
	s := decodeNString(data, q)
	if s.Status != StatusConsumed {
		return imap.BodyExtension{}, nil, s.Status, s.Reason
	}
	return imap.BodyExtension{Str: s.Value}, s.Rest, StatusConsumed, ""
}

// encodeFetchData encodes a FETCH response's parenthesised data-item list.
func encodeFetchData(b *builder, n uint32, items []imap.FetchDataItem) {
	b.writeByte(' ')
	b.writeString(strconv.FormatUint(uint64(n), 10))
	b.writeString(" FETCH (")
	for i, it := range items {
		if i > 0 {
			b.writeByte(' ')
		}
		encodeFetchDataItem(b, it)
	}
	b.writeByte(')')
}

func encodeFetchDataItem(b *builder, it imap.FetchDataItem) {
	switch it.Kind {
	case imap.FetchDataFlags:
		b.writeString("FLAGS ")
		writeFlags(b, it.Flags)
	case imap.FetchDataUID:
		b.writeString("UID ")
		b.writeString(strconv.FormatUint(uint64(it.UID), 10))
	case imap.FetchDataRFC822Size:
		b.writeString("RFC822.SIZE ")
		b.writeString(strconv.FormatUint(uint64(it.RFC822Size), 10))
	case imap.FetchDataInternalDate:
		b.writeString("INTERNALDATE ")
		writeQuoted(b, it.InternalDate.String())
	case imap.FetchDataModSeq:
		b.writeString("MODSEQ (")
		b.writeString(strconv.FormatUint(it.ModSeq, 10))
		b.writeByte(')')
	case imap.FetchDataEnvelope:
		b.writeString("ENVELOPE ")
		encodeEnvelope(b, it.Envelope)
	case imap.FetchDataBodyStructure:
		b.writeString("BODYSTRUCTURE ")
		encodeBodyStructure(b, it.BodyStructure, true)
	case imap.FetchDataBody:
		b.writeString("BODY ")
		encodeBodyStructure(b, it.BodyStructure, false)
	case imap.FetchDataBodySection:
		b.writeString("BODY")
		encodeBodySectionSpecifier(b, *it.Section)
		b.writeByte(' ')
		if it.HasLiteral {
			writeAString(b, it.Literal)
		} else {
			b.writeString("NIL")
		}
	case imap.FetchDataPreview:
		b.writeString("PREVIEW ")
		writeNString(b, it.Preview)
	case imap.FetchDataSaveDate:
		b.writeString("SAVEDATE ")
		writeNString(b, it.SaveDate)
	case imap.FetchDataEmailID:
		b.writeString("EMAILID (")
		writeQuoted(b, it.EmailID)
		b.writeByte(')')
	case imap.FetchDataThreadID:
		b.writeString("THREADID ")
		if it.ThreadID == "" {
			b.writeString("NIL")
		} else {
			b.writeByte('(')
			writeQuoted(b, it.ThreadID)
			b.writeByte(')')
		}
	}
}

func encodeBodySectionSpecifier(b *builder, spec imap.BodySectionSpecifier) {
	b.writeByte('[')
	for i, p := range spec.Part {
		if i > 0 {
			b.writeByte('.')
		}
		b.writeString(strconv.Itoa(p))
	}
	if spec.HasText {
		if len(spec.Part) > 0 {
			b.writeByte('.')
		}
		b.writeString(spec.Text)
		if spec.Text == "HEADER.FIELDS" || spec.Text == "HEADER.FIELDS.NOT" {
			b.writeString(" (")
			for i, f := range spec.Fields {
				if i > 0 {
					b.writeByte(' ')
				}
				writeAString(b, imap.NewAString(f))
			}
			b.writeByte(')')
		}
	}
	b.writeByte(']')
}

func encodeEnvelope(b *builder, env *imap.Envelope) {
	if env == nil {
		b.writeString("NIL")
		return
	}
	b.writeByte('(')
	if env.HasDate {
		writeNString(b, imap.NewNString(env.DateText, true))
	} else {
		b.writeString("NIL")
	}
	b.writeByte(' ')
	writeNString(b, imap.NewNString(env.Subject, env.Subject != ""))
	b.writeByte(' ')
	encodeAddressList(b, env.From)
	b.writeByte(' ')
	encodeAddressList(b, env.Sender)
	b.writeByte(' ')
	encodeAddressList(b, env.ReplyTo)
	b.writeByte(' ')
	encodeAddressList(b, env.To)
	b.writeByte(' ')
	encodeAddressList(b, env.Cc)
	b.writeByte(' ')
	encodeAddressList(b, env.Bcc)
	b.writeByte(' ')
	writeNString(b, imap.NewNString(env.InReplyTo, env.InReplyTo != ""))
	b.writeByte(' ')
	writeNString(b, imap.NewNString(env.MessageID, env.MessageID != ""))
	b.writeByte(')')
}

func encodeAddressList(b *builder, addrs []imap.Address) {
	if len(addrs) == 0 {
		b.writeString("NIL")
		return
	}
	b.writeByte('(')
	for _, a := range addrs {
		encodeAddress(b, a)
	}
	b.writeByte(')')
}

func encodeAddress(b *builder, a imap.Address) {
	b.writeByte('(')
	writeNString(b, imap.NewNString(a.Name, a.Name != ""))
	b.writeByte(' ')
	writeNString(b, imap.NewNString(a.AtDomainList, a.AtDomainList != ""))
	b.writeByte(' ')
	writeNString(b, imap.NewNString(a.Mailbox, a.Mailbox != ""))
	b.writeByte(' ')
	writeNString(b, imap.NewNString(a.Host, a.Host != ""))
	b.writeByte(')')
}

func encodeBodyStructure(b *builder, bs *imap.BodyStructure, extended bool) {
	if bs == nil {
		b.writeString("NIL")
		return
	}
	b.writeByte('(')
	if bs.IsMultipart() {
		for i := range bs.Children {
			encodeBodyStructure(b, &bs.Children[i], extended)
		}
		b.writeByte(' ')
		writeQuoted(b, bs.Subtype)
		if extended && bs.Extended {
			b.writeByte(' ')
			encodeBodyExtMpartFields(b, bs)
		}
	} else {
		writeQuoted(b, bs.Type)
		b.writeByte(' ')
		writeQuoted(b, bs.Subtype)
		b.writeByte(' ')
		encodeBodyFields(b, bs)
		switch {
		case strings.EqualFold(bs.Type, "message") && strings.EqualFold(bs.Subtype, "rfc822"):
			b.writeByte(' ')
			encodeEnvelope(b, bs.Envelope)
			b.writeByte(' ')
			encodeBodyStructure(b, bs.BodyStructure, extended)
			b.writeByte(' ')
			b.writeString(strconv.FormatUint(uint64(bs.Lines), 10))
		case strings.EqualFold(bs.Type, "text"):
			b.writeByte(' ')
			b.writeString(strconv.FormatUint(uint64(bs.Lines), 10))
		}
		if extended && bs.Extended {
			b.writeByte(' ')
			encodeBodyExt1partFields(b, bs)
		}
	}
	b.writeByte(')')
}

func encodeBodyFields(b *builder, bs *imap.BodyStructure) {
	encodeBodyParamList(b, bs.Params)
	b.writeByte(' ')
	writeNString(b, imap.NewNString(bs.ID, bs.HasID))
	b.writeByte(' ')
	writeNString(b, imap.NewNString(bs.Description, bs.HasDescription))
	b.writeByte(' ')
	writeQuoted(b, bs.Encoding)
	b.writeByte(' ')
	b.writeString(strconv.FormatUint(uint64(bs.Size), 10))
}

// encodeBodyParamList writes params in sorted key order: Go map iteration
// is unordered, and the original parameter order on the wire is not
// preserved by this codec's map-based representation.
func encodeBodyParamList(b *builder, params map[string]string) {
	if len(params) == 0 {
		b.writeString("NIL")
		return
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.writeByte('(')
	for i, k := range keys {
		if i > 0 {
			b.writeByte(' ')
		}
		writeQuoted(b, k)
		b.writeByte(' ')
		writeQuoted(b, params[k])
	}
	b.writeByte(')')
}

func encodeBodyFldDsp(b *builder, hasDisp bool, dispType string, dispParams map[string]string) {
	if !hasDisp {
		b.writeString("NIL")
		return
	}
	b.writeByte('(')
	writeQuoted(b, dispType)
	b.writeByte(' ')
	encodeBodyParamList(b, dispParams)
	b.writeByte(')')
}

func encodeBodyFldLang(b *builder, langs []string) {
	if len(langs) == 0 {
		b.writeString("NIL")
		return
	}
	if len(langs) == 1 {
		writeQuoted(b, langs[0])
		return
	}
	b.writeByte('(')
	for i, l := range langs {
		if i > 0 {
			b.writeByte(' ')
		}
		writeQuoted(b, l)
	}
	b.writeByte(')')
}

func encodeBodyExtension(b *builder, ext imap.BodyExtension) {
	if ext.List != nil {
		b.writeByte('(')
		for i, e := range ext.List {
			if i > 0 {
				b.writeByte(' ')
			}
			encodeBodyExtension(b, e)
		}
		b.writeByte(')')
		return
	}
	if ext.HasNumber {
		b.writeString(strconv.FormatUint(uint64(ext.Number), 10))
		return
	}
	writeNString(b, ext.Str)
}

func encodeBodyExt1partFields(b *builder, bs *imap.BodyStructure) {
	writeNString(b, imap.NewNString(bs.MD5, bs.HasMD5))
	if !bs.HasDisposition && len(bs.Language) == 0 && !bs.HasLocation && len(bs.TrailingExtensions) == 0 {
		return
	}
	b.writeByte(' ')
	encodeBodyFldDsp(b, bs.HasDisposition, bs.DispositionType, bs.DispositionParams)
	if len(bs.Language) == 0 && !bs.HasLocation && len(bs.TrailingExtensions) == 0 {
		return
	}
	b.writeByte(' ')
	encodeBodyFldLang(b, bs.Language)
	if !bs.HasLocation && len(bs.TrailingExtensions) == 0 {
		return
	}
	b.writeByte(' ')
	writeNString(b, imap.NewNString(bs.Location, bs.HasLocation))
	for _, ext := range bs.TrailingExtensions {
		b.writeByte(' ')
		encodeBodyExtension(b, ext)
	}
}

func encodeBodyExtMpartFields(b *builder, bs *imap.BodyStructure) {
	encodeBodyParamList(b, bs.Params)
	if !bs.HasDisposition && len(bs.Language) == 0 && !bs.HasLocation && len(bs.TrailingExtensions) == 0 {
		return
	}
	b.writeByte(' ')
	encodeBodyFldDsp(b, bs.HasDisposition, bs.DispositionType, bs.DispositionParams)
	if len(bs.Language) == 0 && !bs.HasLocation && len(bs.TrailingExtensions) == 0 {
		return
	}
	b.writeByte(' ')
	encodeBodyFldLang(b, bs.Language)
	if !bs.HasLocation && len(bs.TrailingExtensions) == 0 {
		return
	}
	b.writeByte(' ')
	writeNString(b, imap.NewNString(bs.Location, bs.HasLocation))
	for _, ext := range bs.TrailingExtensions {
		b.writeByte(' ')
		encodeBodyExtension(b, ext)
	}
}
