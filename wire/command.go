package wire

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/corvidmail/imapcodec"
)

// DecodeCommand decodes one client command line.
func DecodeCommand(data []byte, q Quirks) Result[imap.Command] {
	tag := decodeTag(data)
	switch tag.Status {
	case StatusIncomplete:
		return Incomplete[imap.Command]()
	case StatusFailed:
		return Failed[imap.Command](tag.Reason)
	}
	sp := decodeSP(tag.Rest)
	switch sp.Status {
	case StatusIncomplete:
		return Incomplete[imap.Command]()
	case StatusFailed:
		return Failed[imap.Command](sp.Reason)
	}
	rest := sp.Rest

	uid := false
	if len(rest) >= 4 && strings.EqualFold(string(rest[:3]), "UID") && rest[3] == ' ' {
		uid = true
		rest = rest[4:]
	} else if len(rest) < 4 && strings.EqualFold(string(rest), "UID"[:min(len(rest), 3)]) {
		return Incomplete[imap.Command]()
	}

	word := decodeAtomRaw(rest)
	switch word.Status {
	case StatusIncomplete:
		return Incomplete[imap.Command]()
	case StatusFailed:
		return Failed[imap.Command](word.Reason)
	}
	kind := imap.CommandKind(strings.ToUpper(word.Value))
	rest = word.Rest

	arg, rest2, status, reason := decodeCommandArg(kind, rest, q)
	switch status {
	case StatusIncomplete:
		return Incomplete[imap.Command]()
	case StatusFailed:
		return Failed[imap.Command](reason)
	case StatusLiteralFound:
		// Report the first literal header whose payload is not all in data,
		// skipping the payloads of complete literals before it.
		for i := 0; i < len(data); i++ {
			if data[i] == '{' {
				if hdr := decodeLiteralHeader(data[i:], q); hdr.Status == StatusConsumed {
					if int64(len(hdr.Rest)) < hdr.Value.Length {
						return LiteralFound[imap.Command](hdr.Value)
					}
					i = len(data) - len(hdr.Rest) + int(hdr.Value.Length) - 1
				}
			}
		}
		return Incomplete[imap.Command]()
	}

	crlf := decodeCRLF(rest2, q)
	switch crlf.Status {
	case StatusIncomplete:
		return Incomplete[imap.Command]()
	case StatusFailed:
		return Failed[imap.Command](crlf.Reason)
	}

	return Consumed(imap.Command{Tag: tag.Value, Kind: kind, UID: uid, Arg: arg}, crlf.Rest)
}

func decodeCommandArg(kind imap.CommandKind, data []byte, q Quirks) (imap.CommandArg, []byte, Status, string) {
	switch kind {
	case imap.CommandCapability, imap.CommandNoop, imap.CommandLogout,
		imap.CommandStartTLS, imap.CommandIdle, imap.CommandClose,
		imap.CommandUnselect, imap.CommandExpunge:
		return nil, data, StatusConsumed, ""

	case imap.CommandLogin:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		u := decodeAString(s.Rest, q)
		if u.Status != StatusConsumed {
			return nil, nil, u.Status, u.Reason
		}
		s2 := decodeSP(u.Rest)
		if s2.Status != StatusConsumed {
			return nil, nil, s2.Status, s2.Reason
		}
		p := decodeAString(s2.Rest, q)
		if p.Status != StatusConsumed {
			return nil, nil, p.Status, p.Reason
		}
		return imap.CommandArgLogin{Username: u.Value, Password: p.Value}, p.Rest, StatusConsumed, ""

	case imap.CommandAuthenticate:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		mech := decodeAtom(s.Rest)
		if mech.Status != StatusConsumed {
			return nil, nil, mech.Status, mech.Reason
		}
		rest := mech.Rest
		arg := imap.CommandArgAuthenticate{Mechanism: mech.Value}
		if sp2 := decodeSP(rest); sp2.Status == StatusConsumed {
			b64 := decodeLine(sp2.Rest, q)
			if b64.Status != StatusConsumed {
				return nil, nil, b64.Status, b64.Reason
			}
			raw, err := decodeBase64(b64.Value)
			if err != nil {
				return nil, nil, StatusFailed, "invalid base64 in AUTHENTICATE"
			}
			arg.InitialResp = raw
			arg.HasInitialResp = true
			rest = b64.Rest
		} else if sp2.Status == StatusIncomplete {
			return nil, nil, StatusIncomplete, ""
		}
		return arg, rest, StatusConsumed, ""

	case imap.CommandEnable:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		caps, rest, status, reason := decodeCapListSP(s.Rest)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		return imap.CommandArgEnable{Caps: caps}, rest, StatusConsumed, ""

	case imap.CommandSelect, imap.CommandExamine:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		mb := decodeMailbox(s.Rest, q)
		if mb.Status != StatusConsumed {
			return nil, nil, mb.Status, mb.Reason
		}
		mods, rest, status, reason := decodeSelectModifiers(mb.Rest, q)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		return imap.CommandArgSelect{Mailbox: mb.Value, Modifiers: mods}, rest, StatusConsumed, ""

	case imap.CommandCreate, imap.CommandDelete, imap.CommandSubscribe, imap.CommandUnsubscribe:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		mb := decodeMailbox(s.Rest, q)
		if mb.Status != StatusConsumed {
			return nil, nil, mb.Status, mb.Reason
		}
		return imap.CommandArgMailbox{Mailbox: mb.Value}, mb.Rest, StatusConsumed, ""

	case imap.CommandRename:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		from := decodeMailbox(s.Rest, q)
		if from.Status != StatusConsumed {
			return nil, nil, from.Status, from.Reason
		}
		s2 := decodeSP(from.Rest)
		if s2.Status != StatusConsumed {
			return nil, nil, s2.Status, s2.Reason
		}
		to := decodeMailbox(s2.Rest, q)
		if to.Status != StatusConsumed {
			return nil, nil, to.Status, to.Reason
		}
		return imap.CommandArgRename{From: from.Value, To: to.Value}, to.Rest, StatusConsumed, ""

	case imap.CommandList, imap.CommandLSub:
		return decodeListArg(data, q)

	case imap.CommandStatus:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		mb := decodeMailbox(s.Rest, q)
		if mb.Status != StatusConsumed {
			return nil, nil, mb.Status, mb.Reason
		}
		s2 := decodeSP(mb.Rest)
		if s2.Status != StatusConsumed {
			return nil, nil, s2.Status, s2.Reason
		}
		items, rest, status, reason := decodeStatusItemList(s2.Rest)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		return imap.CommandArgStatus{Mailbox: mb.Value, Items: items}, rest, StatusConsumed, ""

	case imap.CommandAppend:
		return decodeAppendArg(data, q)

	case imap.CommandSearch:
		return decodeSearchArg(data, q)

	case imap.CommandFetch:
		return decodeFetchArg(data, q)

	case imap.CommandStore:
		return decodeStoreArg(data, q)

	case imap.CommandCopy, imap.CommandMove:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		seqs, rest, status, reason := decodeSeqSet(s.Rest)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		s2 := decodeSP(rest)
		if s2.Status != StatusConsumed {
			return nil, nil, s2.Status, s2.Reason
		}
		mb := decodeMailbox(s2.Rest, q)
		if mb.Status != StatusConsumed {
			return nil, nil, mb.Status, mb.Reason
		}
		return imap.CommandArgCopy{Seqs: seqs, Mailbox: mb.Value}, mb.Rest, StatusConsumed, ""

	case imap.CommandGetMetadata:
		return decodeGetMetadataArg(data, q)

	case imap.CommandSetMetadata:
		return decodeSetMetadataArg(data, q)

	case imap.CommandID:
		s := decodeSP(data)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		params, rest, status, reason := decodeIDParams(s.Rest, q)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		return imap.CommandArgID{Params: params, HasParams: len(params.Fields) > 0}, rest, StatusConsumed, ""

	default:
		return nil, nil, StatusFailed, "unsupported command " + string(kind)
	}
}

// capitalizeFlag renders e.g. "UNSEEN" as "Unseen", matching the casing of
// the system flags defined in imap.go.
func capitalizeFlag(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]) + strings.ToLower(s[1:])
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

func decodeCapListSP(data []byte) ([]imap.Cap, []byte, Status, string) {
	var caps []imap.Cap
	rest := data
	for {
		a := decodeAtomRaw(rest)
		if a.Status == StatusIncomplete {
			return nil, nil, StatusIncomplete, ""
		}
		if a.Status != StatusConsumed {
			return nil, nil, a.Status, a.Reason
		}
		caps = append(caps, imap.Cap(a.Value))
		rest = a.Rest
		sp := decodeSP(rest)
		if sp.Status == StatusIncomplete {
			return nil, nil, StatusIncomplete, ""
		}
		if sp.Status != StatusConsumed {
			break
		}
		rest = sp.Rest
	}
	return caps, rest, StatusConsumed, ""
}

func decodeSeqSet(data []byte) (imap.NumSet, []byte, Status, string) {
	n, complete := scanWhile(data, isSeqSetChar)
	if !complete {
		return nil, nil, StatusIncomplete, ""
	}
	if n == 0 {
		return nil, nil, StatusFailed, "expected sequence set"
	}
	set, err := imap.ParseSeqSet(string(data[:n]))
	if err != nil {
		return nil, nil, StatusFailed, err.Error()
	}
	return set, data[n:], StatusConsumed, ""
}

func isSeqSetChar(b byte) bool {
	return (b >= '0' && b <= '9') || b == ',' || b == ':' || b == '*'
}

func decodeSelectModifiers(data []byte, q Quirks) ([]imap.SelectModifier, []byte, Status, string) {
	sp := decodeSP(data)
	if sp.Status == StatusIncomplete {
		return nil, nil, StatusIncomplete, ""
	}
	if sp.Status != StatusConsumed {
		return nil, data, StatusConsumed, ""
	}
	p := decodeByte(sp.Rest, '(')
	if p.Status != StatusConsumed {
		return nil, nil, p.Status, p.Reason
	}
	var mods []imap.SelectModifier
	rest := p.Rest
	first := true
	for {
		if len(rest) == 0 {
			return nil, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			return mods, rest[1:], StatusConsumed, ""
		}
		if !first {
			s := decodeSP(rest)
			if s.Status != StatusConsumed {
				return nil, nil, s.Status, s.Reason
			}
			rest = s.Rest
		}
		name := decodeAtomRaw(rest)
		if name.Status != StatusConsumed {
			return nil, nil, name.Status, name.Reason
		}
		switch strings.ToUpper(name.Value) {
		case "CONDSTORE":
			mods = append(mods, imap.SelectModifierCondStore{})
			rest = name.Rest
		case "QRESYNC":
			param, rest2, status, reason := decodeQResyncParam(name.Rest)
			if status != StatusConsumed {
				return nil, nil, status, reason
			}
			mods = append(mods, imap.SelectModifierQResync{Param: param})
			rest = rest2
		default:
			return nil, nil, StatusFailed, "unknown select modifier " + name.Value
		}
		first = false
	}
}

func decodeQResyncParam(data []byte) (imap.QResyncParam, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return imap.QResyncParam{}, nil, s.Status, s.Reason
	}
	p := decodeByte(s.Rest, '(')
	if p.Status != StatusConsumed {
		return imap.QResyncParam{}, nil, p.Status, p.Reason
	}
	uv := decodeNumber(p.Rest)
	if uv.Status != StatusConsumed {
		return imap.QResyncParam{}, nil, uv.Status, uv.Reason
	}
	s2 := decodeSP(uv.Rest)
	if s2.Status != StatusConsumed {
		return imap.QResyncParam{}, nil, s2.Status, s2.Reason
	}
	ms := decodeNumber64(s2.Rest)
	if ms.Status != StatusConsumed {
		return imap.QResyncParam{}, nil, ms.Status, ms.Reason
	}
	param := imap.QResyncParam{UIDValidity: uv.Value, ModSeq: ms.Value}
	rest := ms.Rest
	if sp3 := decodeSP(rest); sp3.Status == StatusConsumed {
		set, rest2, status, reason := decodeSeqSet(sp3.Rest)
		if status == StatusConsumed {
			if us, ok := set.(*imap.UIDSet); ok {
				param.KnownUIDs = us
				param.HasKnownUIDs = true
			}
			rest = rest2
		} else if status == StatusIncomplete {
			return imap.QResyncParam{}, nil, StatusIncomplete, ""
		} else {
			return imap.QResyncParam{}, nil, status, reason
		}
	} else if sp3.Status == StatusIncomplete {
		return imap.QResyncParam{}, nil, StatusIncomplete, ""
	}
	c := decodeByte(rest, ')')
	if c.Status != StatusConsumed {
		return imap.QResyncParam{}, nil, c.Status, c.Reason
	}
	return param, c.Rest, StatusConsumed, ""
}

func decodeListArg(data []byte, q Quirks) (imap.CommandArg, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	rest := s.Rest

	var selOpts []imap.ListSelectOpt
	if len(rest) > 0 && rest[0] == '(' {
		opts, rest2, status, reason := decodeParenAtomList(rest)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		for _, o := range opts {
			selOpts = append(selOpts, imap.ListSelectOpt(strings.ToUpper(o)))
		}
		sp2 := decodeSP(rest2)
		if sp2.Status != StatusConsumed {
			return nil, nil, sp2.Status, sp2.Reason
		}
		rest = sp2.Rest
	}

	ref := decodeMailbox(rest, q)
	if ref.Status != StatusConsumed {
		return nil, nil, ref.Status, ref.Reason
	}
	sp3 := decodeSP(ref.Rest)
	if sp3.Status != StatusConsumed {
		return nil, nil, sp3.Status, sp3.Reason
	}
	rest = sp3.Rest

	var patterns []imap.Mailbox
	if len(rest) > 0 && rest[0] == '(' {
		rest = rest[1:]
		first := true
		for {
			if len(rest) == 0 {
				return nil, nil, StatusIncomplete, ""
			}
			if rest[0] == ')' {
				rest = rest[1:]
				break
			}
			if !first {
				sp := decodeSP(rest)
				if sp.Status != StatusConsumed {
					return nil, nil, sp.Status, sp.Reason
				}
				rest = sp.Rest
			}
			mb := decodeMailbox(rest, q)
			if mb.Status != StatusConsumed {
				return nil, nil, mb.Status, mb.Reason
			}
			patterns = append(patterns, mb.Value)
			rest = mb.Rest
			first = false
		}
	} else {
		mb := decodeMailbox(rest, q)
		if mb.Status != StatusConsumed {
			return nil, nil, mb.Status, mb.Reason
		}
		patterns = []imap.Mailbox{mb.Value}
		rest = mb.Rest
	}

	arg := imap.CommandArgList{Reference: ref.Value, Pattern: patterns, SelectOpts: selOpts}

	if sp4 := decodeSP(rest); sp4.Status == StatusConsumed {
		word := decodeAtomRaw(sp4.Rest)
		if word.Status == StatusConsumed && strings.EqualFold(word.Value, "RETURN") {
			opts, rest2, status, reason := decodeReturnOpts(word.Rest)
			if status != StatusConsumed {
				return nil, nil, status, reason
			}
			arg.ReturnOpts = opts
			rest = rest2
		}
	} else if sp4.Status == StatusIncomplete {
		return nil, nil, StatusIncomplete, ""
	}

	return arg, rest, StatusConsumed, ""
}

func decodeParenAtomList(data []byte) ([]string, []byte, Status, string) {
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

func decodeReturnOpts(data []byte) ([]imap.ListReturnOpt, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	opts, rest, status, reason := decodeParenAtomList(s.Rest)
	if status != StatusConsumed {
		return nil, nil, status, reason
	}
	var out []imap.ListReturnOpt
	for _, o := range opts {
		out = append(out, imap.ListReturnOpt(strings.ToUpper(o)))
	}
	return out, rest, StatusConsumed, ""
}

func decodeStatusItemList(data []byte) ([]imap.StatusItem, []byte, Status, string) {
	opts, rest, status, reason := decodeParenAtomList(data)
	if status != StatusConsumed {
		return nil, nil, status, reason
	}
	var out []imap.StatusItem
	for _, o := range opts {
		out = append(out, imap.StatusItem(strings.ToUpper(o)))
	}
	return out, rest, StatusConsumed, ""
}

func decodeAppendArg(data []byte, q Quirks) (imap.CommandArg, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	mb := decodeMailbox(s.Rest, q)
	if mb.Status != StatusConsumed {
		return nil, nil, mb.Status, mb.Reason
	}
	rest := mb.Rest
	opts := imap.AppendOptions{}

	if sp2 := decodeSP(rest); sp2.Status == StatusConsumed && len(sp2.Rest) > 0 && sp2.Rest[0] == '(' {
		flags, rest2, status, reason := decodeFlagParenList(sp2.Rest)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		opts.Flags = flags
		rest = rest2
	} else if sp2.Status == StatusIncomplete {
		return nil, nil, StatusIncomplete, ""
	}

	if sp3 := decodeSP(rest); sp3.Status == StatusConsumed && len(sp3.Rest) > 0 && sp3.Rest[0] == '"' {
		dq := decodeQuotedString(sp3.Rest)
		if dq.Status != StatusConsumed {
			return nil, nil, dq.Status, dq.Reason
		}
		d, err := imap.ParseInternalDate(dq.Value.String())
		if err != nil {
			return nil, nil, StatusFailed, err.Error()
		}
		opts.InternalDate = d
		opts.HasInternalDate = true
		rest = dq.Rest
	} else if sp3.Status == StatusIncomplete {
		return nil, nil, StatusIncomplete, ""
	}

	sp4 := decodeSP(rest)
	if sp4.Status != StatusConsumed {
		return nil, nil, sp4.Status, sp4.Reason
	}
	lit := decodeLiteral(sp4.Rest, q)
	switch lit.Status {
	case StatusIncomplete:
		return nil, nil, StatusIncomplete, ""
	case StatusLiteralFound:
		return nil, nil, StatusLiteralFound, ""
	case StatusFailed:
		return nil, nil, StatusFailed, lit.Reason
	}
	return imap.CommandArgAppend{Mailbox: mb.Value, Options: opts, Literal: lit.Value}, lit.Rest, StatusConsumed, ""
}

func decodeGetMetadataArg(data []byte, q Quirks) (imap.CommandArg, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	rest := s.Rest
	opts := imap.GetMetadataOptions{Depth: imap.MetadataDepthZero}
	if len(rest) > 0 && rest[0] == '(' {
		rest = rest[1:]
		for {
			word := decodeAtomRaw(rest)
			if word.Status != StatusConsumed {
				return nil, nil, word.Status, word.Reason
			}
			rest = word.Rest
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				return nil, nil, sp.Status, sp.Reason
			}
			if strings.EqualFold(word.Value, "DEPTH") {
				d := decodeAtomRaw(sp.Rest)
				if d.Status != StatusConsumed {
					return nil, nil, d.Status, d.Reason
				}
				opts.Depth = imap.MetadataDepth(d.Value)
				rest = d.Rest
			} else if strings.EqualFold(word.Value, "MAXSIZE") {
				n := decodeNumber(sp.Rest)
				if n.Status != StatusConsumed {
					return nil, nil, n.Status, n.Reason
				}
				opts.MaxSize = n.Value
				opts.HasMaxSize = true
				rest = n.Rest
			} else {
				return nil, nil, StatusFailed, "unknown GETMETADATA option " + word.Value
			}
			if len(rest) == 0 {
				return nil, nil, StatusIncomplete, ""
			}
			if rest[0] == ')' {
				rest = rest[1:]
				break
			}
			sp2 := decodeSP(rest)
			if sp2.Status != StatusConsumed {
				return nil, nil, sp2.Status, sp2.Reason
			}
			rest = sp2.Rest
		}
		sp3 := decodeSP(rest)
		if sp3.Status != StatusConsumed {
			return nil, nil, sp3.Status, sp3.Reason
		}
		rest = sp3.Rest
	}
	mb := decodeMailbox(rest, q)
	if mb.Status != StatusConsumed {
		return nil, nil, mb.Status, mb.Reason
	}
	sp4 := decodeSP(mb.Rest)
	if sp4.Status != StatusConsumed {
		return nil, nil, sp4.Status, sp4.Reason
	}

	var entries []string
	if len(sp4.Rest) > 0 && sp4.Rest[0] == '(' {
		rest2 := sp4.Rest[1:]
		first := true
		for {
			if len(rest2) == 0 {
				return nil, nil, StatusIncomplete, ""
			}
			if rest2[0] == ')' {
				rest2 = rest2[1:]
				break
			}
			if !first {
				sp := decodeSP(rest2)
				if sp.Status != StatusConsumed {
					return nil, nil, sp.Status, sp.Reason
				}
				rest2 = sp.Rest
			}
			a := decodeAString(rest2, q)
			if a.Status != StatusConsumed {
				return nil, nil, a.Status, a.Reason
			}
			entries = append(entries, imap.AStringText(a.Value))
			rest2 = a.Rest
			first = false
		}
		return imap.CommandArgGetMetadata{Mailbox: mb.Value, Options: opts, Entries: entries}, rest2, StatusConsumed, ""
	}
	a := decodeAString(sp4.Rest, q)
	if a.Status != StatusConsumed {
		return nil, nil, a.Status, a.Reason
	}
	return imap.CommandArgGetMetadata{Mailbox: mb.Value, Options: opts, Entries: []string{imap.AStringText(a.Value)}}, a.Rest, StatusConsumed, ""
}

func decodeSetMetadataArg(data []byte, q Quirks) (imap.CommandArg, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	mb := decodeMailbox(s.Rest, q)
	if mb.Status != StatusConsumed {
		return nil, nil, mb.Status, mb.Reason
	}
	sp2 := decodeSP(mb.Rest)
	if sp2.Status != StatusConsumed {
		return nil, nil, sp2.Status, sp2.Reason
	}
	p := decodeByte(sp2.Rest, '(')
	if p.Status != StatusConsumed {
		return nil, nil, p.Status, p.Reason
	}
	var entries []imap.MetadataEntry
	rest := p.Rest
	first := true
	for {
		if len(rest) == 0 {
			return nil, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			rest = rest[1:]
			break
		}
		if !first {
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				return nil, nil, sp.Status, sp.Reason
			}
			rest = sp.Rest
		}
		name := decodeAString(rest, q)
		if name.Status != StatusConsumed {
			return nil, nil, name.Status, name.Reason
		}
		sp3 := decodeSP(name.Rest)
		if sp3.Status != StatusConsumed {
			return nil, nil, sp3.Status, sp3.Reason
		}
		val := decodeNString(sp3.Rest, q)
		if val.Status != StatusConsumed {
			return nil, nil, val.Status, val.Reason
		}
		entries = append(entries, imap.MetadataEntry{Name: imap.AStringText(name.Value), Value: val.Value})
		rest = val.Rest
		first = false
	}
	return imap.CommandArgSetMetadata{Mailbox: mb.Value, Entries: entries}, rest, StatusConsumed, ""
}

func decodeSearchArg(data []byte, q Quirks) (imap.CommandArg, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	rest := s.Rest
	arg := imap.CommandArgSearch{}

	if word := decodeAtomRaw(rest); word.Status == StatusConsumed && strings.EqualFold(word.Value, "RETURN") {
		opts, rest2, status, reason := decodeSearchReturnOpts(word.Rest)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		arg.Return = opts
		sp := decodeSP(rest2)
		if sp.Status != StatusConsumed {
			return nil, nil, sp.Status, sp.Reason
		}
		rest = sp.Rest
	} else if word.Status == StatusIncomplete {
		return nil, nil, StatusIncomplete, ""
	}

	if word := decodeAtomRaw(rest); word.Status == StatusConsumed && strings.EqualFold(word.Value, "CHARSET") {
		sp := decodeSP(word.Rest)
		if sp.Status != StatusConsumed {
			return nil, nil, sp.Status, sp.Reason
		}
		cs := decodeAtomRaw(sp.Rest)
		if cs.Status != StatusConsumed {
			return nil, nil, cs.Status, cs.Reason
		}
		arg.Charset = cs.Value
		arg.HasCharset = true
		sp2 := decodeSP(cs.Rest)
		if sp2.Status != StatusConsumed {
			return nil, nil, sp2.Status, sp2.Reason
		}
		rest = sp2.Rest
	} else if word.Status == StatusIncomplete {
		return nil, nil, StatusIncomplete, ""
	}

	key, rest2, status, reason := decodeSearchKeySeq(rest, q)
	if status != StatusConsumed {
		return nil, nil, status, reason
	}
	arg.Key = key
	return arg, rest2, StatusConsumed, ""
}

func decodeSearchReturnOpts(data []byte) ([]imap.SearchReturnOpt, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	opts, rest, status, reason := decodeParenAtomList(s.Rest)
	if status != StatusConsumed {
		return nil, nil, status, reason
	}
	var out []imap.SearchReturnOpt
	for _, o := range opts {
		out = append(out, imap.SearchReturnOpt(strings.ToUpper(o)))
	}
	return out, rest, StatusConsumed, ""
}

// decodeSearchKeySeq decodes a space-separated sequence of search keys,
// implicitly AND-ed together (the top-level and the parenthesised-group
// grammar share this form).
func decodeSearchKeySeq(data []byte, q Quirks) (imap.SearchKey, []byte, Status, string) {
	var keys []imap.SearchKey
	rest := data
	for {
		k, rest2, status, reason := decodeSearchKey(rest, q)
		if status == StatusIncomplete {
			return nil, nil, StatusIncomplete, ""
		}
		if status != StatusConsumed {
			if len(keys) == 0 {
				return nil, nil, status, reason
			}
			break
		}
		keys = append(keys, k)
		rest = rest2
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			break
		}
		rest = sp.Rest
	}
	if len(keys) == 1 {
		return keys[0], rest, StatusConsumed, ""
	}
	return imap.SearchKeyAnd{Children: keys}, rest, StatusConsumed, ""
}

func decodeSearchKey(data []byte, q Quirks) (imap.SearchKey, []byte, Status, string) {
	if len(data) == 0 {
		return nil, nil, StatusIncomplete, ""
	}
	if data[0] == '(' {
		inner, rest, status, reason := decodeSearchKeySeq(data[1:], q)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		c := decodeByte(rest, ')')
		if c.Status != StatusConsumed {
			return nil, nil, c.Status, c.Reason
		}
		return inner, c.Rest, StatusConsumed, ""
	}
	if isSeqSetChar(data[0]) {
		set, rest, status, reason := decodeSeqSet(data)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		if ss, ok := set.(*imap.SeqSet); ok {
			return imap.SearchKeySeqSet{Set: ss}, rest, StatusConsumed, ""
		}
		return nil, nil, StatusFailed, "expected sequence set"
	}

	word := decodeAtomRaw(data)
	switch word.Status {
	case StatusIncomplete:
		return nil, nil, StatusIncomplete, ""
	case StatusFailed:
		return nil, nil, StatusFailed, word.Reason
	}
	rest := word.Rest
	upper := strings.ToUpper(word.Value)

	switch upper {
	case "ALL":
		return imap.SearchKeyAll{}, rest, StatusConsumed, ""
	case "ANSWERED", "DELETED", "DRAFT", "FLAGGED", "RECENT", "SEEN":
		return imap.SearchKeyFlag{Flag: imap.Flag("\\" + capitalizeFlag(upper))}, rest, StatusConsumed, ""
	case "UNANSWERED", "UNDELETED", "UNDRAFT", "UNFLAGGED", "UNSEEN":
		base := strings.TrimPrefix(upper, "UN")
		return imap.SearchKeyNot{Child: imap.SearchKeyFlag{Flag: imap.Flag("\\" + capitalizeFlag(base))}}, rest, StatusConsumed, ""
	case "NEW":
		return imap.SearchKeyAnd{Children: []imap.SearchKey{
			imap.SearchKeyFlag{Flag: imap.FlagRecent},
			imap.SearchKeyNot{Child: imap.SearchKeyFlag{Flag: imap.FlagSeen}},
		}}, rest, StatusConsumed, ""
	case "OLD":
		return imap.SearchKeyNot{Child: imap.SearchKeyFlag{Flag: imap.FlagRecent}}, rest, StatusConsumed, ""
	case "KEYWORD":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		a := decodeAtomRaw(s.Rest)
		if a.Status != StatusConsumed {
			return nil, nil, a.Status, a.Reason
		}
		return imap.SearchKeyKeyword{Keyword: imap.Flag(a.Value)}, a.Rest, StatusConsumed, ""
	case "UNKEYWORD":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		a := decodeAtomRaw(s.Rest)
		if a.Status != StatusConsumed {
			return nil, nil, a.Status, a.Reason
		}
		return imap.SearchKeyNot{Child: imap.SearchKeyKeyword{Keyword: imap.Flag(a.Value)}}, a.Rest, StatusConsumed, ""
	case "BCC", "CC", "FROM", "SUBJECT", "TO":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		v := decodeAString(s.Rest, q)
		if v.Status != StatusConsumed {
			return nil, nil, v.Status, v.Reason
		}
		return imap.SearchKeyHeaderField{Field: upper, Value: imap.AStringText(v.Value)}, v.Rest, StatusConsumed, ""
	case "HEADER":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		f := decodeAString(s.Rest, q)
		if f.Status != StatusConsumed {
			return nil, nil, f.Status, f.Reason
		}
		s2 := decodeSP(f.Rest)
		if s2.Status != StatusConsumed {
			return nil, nil, s2.Status, s2.Reason
		}
		v := decodeAString(s2.Rest, q)
		if v.Status != StatusConsumed {
			return nil, nil, v.Status, v.Reason
		}
		return imap.SearchKeyHeaderField{Field: imap.AStringText(f.Value), Value: imap.AStringText(v.Value)}, v.Rest, StatusConsumed, ""
	case "BODY":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		v := decodeAString(s.Rest, q)
		if v.Status != StatusConsumed {
			return nil, nil, v.Status, v.Reason
		}
		return imap.SearchKeyBody{Value: imap.AStringText(v.Value)}, v.Rest, StatusConsumed, ""
	case "TEXT":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		v := decodeAString(s.Rest, q)
		if v.Status != StatusConsumed {
			return nil, nil, v.Status, v.Reason
		}
		return imap.SearchKeyText{Value: imap.AStringText(v.Value)}, v.Rest, StatusConsumed, ""
	case "BEFORE", "ON", "SINCE", "SENTBEFORE", "SENTON", "SENTSINCE":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		d := decodeSearchDate(s.Rest)
		if d.Status != StatusConsumed {
			return nil, nil, d.Status, d.Reason
		}
		return imap.SearchKeyDate{Op: imap.SearchKeyDateOp(upper), Date: d.Value}, d.Rest, StatusConsumed, ""
	case "LARGER", "SMALLER":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		n := decodeNumber64(s.Rest)
		if n.Status != StatusConsumed {
			return nil, nil, n.Status, n.Reason
		}
		op := imap.SearchKeySizeLarger
		if upper == "SMALLER" {
			op = imap.SearchKeySizeSmaller
		}
		return imap.SearchKeySize{Op: op, Size: int64(n.Value)}, n.Rest, StatusConsumed, ""
	case "UID":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		set, rest2, status, reason := decodeSeqSet(s.Rest)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		us, ok := set.(*imap.UIDSet)
		if !ok {
			return nil, nil, StatusFailed, "expected UID set"
		}
		return imap.SearchKeyUIDSet{Set: us}, rest2, StatusConsumed, ""
	case "NOT":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		child, rest2, status, reason := decodeSearchKey(s.Rest, q)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		return imap.SearchKeyNot{Child: child}, rest2, StatusConsumed, ""
	case "OR":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		left, rest2, status, reason := decodeSearchKey(s.Rest, q)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		s2 := decodeSP(rest2)
		if s2.Status != StatusConsumed {
			return nil, nil, s2.Status, s2.Reason
		}
		right, rest3, status, reason := decodeSearchKey(s2.Rest, q)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		return imap.SearchKeyOr{Left: left, Right: right}, rest3, StatusConsumed, ""
	case "MODSEQ":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		n := decodeNumber64(s.Rest)
		if n.Status != StatusConsumed {
			return nil, nil, n.Status, n.Reason
		}
		return imap.SearchKeyModSeq{ModSeq: n.Value}, n.Rest, StatusConsumed, ""
	case "OLDER":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		n := decodeNumber64(s.Rest)
		if n.Status != StatusConsumed {
			return nil, nil, n.Status, n.Reason
		}
		return imap.SearchKeyOlder{Seconds: int64(n.Value)}, n.Rest, StatusConsumed, ""
	case "YOUNGER":
		s := decodeSP(rest)
		if s.Status != StatusConsumed {
			return nil, nil, s.Status, s.Reason
		}
		n := decodeNumber64(s.Rest)
		if n.Status != StatusConsumed {
			return nil, nil, n.Status, n.Reason
		}
		return imap.SearchKeyYounger{Seconds: int64(n.Value)}, n.Rest, StatusConsumed, ""
	default:
		return nil, nil, StatusFailed, "unsupported search key " + upper
	}
}

func decodeFetchArg(data []byte, q Quirks) (imap.CommandArg, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	set, rest, status, reason := decodeSeqSet(s.Rest)
	if status != StatusConsumed {
		return nil, nil, status, reason
	}
	s2 := decodeSP(rest)
	if s2.Status != StatusConsumed {
		return nil, nil, s2.Status, s2.Reason
	}
	items, rest2, status, reason := decodeFetchItems(s2.Rest, q)
	if status != StatusConsumed {
		return nil, nil, status, reason
	}

	var mods []imap.FetchModifier
	if sp3 := decodeSP(rest2); sp3.Status == StatusConsumed {
		p := decodeByte(sp3.Rest, '(')
		if p.Status == StatusConsumed {
			mods, rest2, status, reason = decodeFetchModifiers(p.Rest)
			if status != StatusConsumed {
				return nil, nil, status, reason
			}
		}
	} else if sp3.Status == StatusIncomplete {
		return nil, nil, StatusIncomplete, ""
	}

	return imap.CommandArgFetch{Seqs: set, Items: items, Modifiers: mods}, rest2, StatusConsumed, ""
}

func decodeFetchModifiers(data []byte) ([]imap.FetchModifier, []byte, Status, string) {
	var mods []imap.FetchModifier
	rest := data
	first := true
	for {
		if len(rest) == 0 {
			return nil, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			return mods, rest[1:], StatusConsumed, ""
		}
		if !first {
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				return nil, nil, sp.Status, sp.Reason
			}
			rest = sp.Rest
		}
		name := decodeAtomRaw(rest)
		if name.Status != StatusConsumed {
			return nil, nil, name.Status, name.Reason
		}
		switch strings.ToUpper(name.Value) {
		case "CHANGEDSINCE":
			sp := decodeSP(name.Rest)
			if sp.Status != StatusConsumed {
				return nil, nil, sp.Status, sp.Reason
			}
			n := decodeNumber64(sp.Rest)
			if n.Status != StatusConsumed {
				return nil, nil, n.Status, n.Reason
			}
			mods = append(mods, imap.FetchModifierChangedSince{ModSeq: n.Value})
			rest = n.Rest
		case "VANISHED":
			mods = append(mods, imap.FetchModifierVanished{})
			rest = name.Rest
		default:
			return nil, nil, StatusFailed, "unknown fetch modifier " + name.Value
		}
		first = false
	}
}

func decodeFetchItems(data []byte, q Quirks) ([]imap.FetchItem, []byte, Status, string) {
	if len(data) > 0 && data[0] == '(' {
		var items []imap.FetchItem
		rest := data[1:]
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
			item, rest2, status, reason := decodeFetchItem(rest, q)
			if status != StatusConsumed {
				return nil, nil, status, reason
			}
			items = append(items, item)
			rest = rest2
			first = false
		}
	}
	item, rest, status, reason := decodeFetchItem(data, q)
	if status != StatusConsumed {
		return nil, nil, status, reason
	}
	return []imap.FetchItem{item}, rest, StatusConsumed, ""
}

func decodeFetchItem(data []byte, q Quirks) (imap.FetchItem, []byte, Status, string) {
	word := decodeFetchAttWord(data)
	switch word.Status {
	case StatusIncomplete:
		return nil, nil, StatusIncomplete, ""
	case StatusFailed:
		return nil, nil, StatusFailed, word.Reason
	}
	upper := strings.ToUpper(word.Value)
	if upper == "MODSEQ" {
		return imap.FetchItemModSeq{}, word.Rest, StatusConsumed, ""
	}
	switch imap.FetchItemFixed(upper) {
	case imap.FetchItemFlags, imap.FetchItemEnvelope, imap.FetchItemBodyStructure,
		imap.FetchItemInternalDate, imap.FetchItemRFC822Size, imap.FetchItemUID,
		imap.FetchItemFast, imap.FetchItemAll, imap.FetchItemFull, imap.FetchItemPreview,
		imap.FetchItemSaveDate, imap.FetchItemEmailID, imap.FetchItemThreadID:
		return imap.FetchItemFixed(upper), word.Rest, StatusConsumed, ""
	}
	if upper == "BODY" || upper == "BODY.PEEK" {
		peek := upper == "BODY.PEEK"
		spec, rest, status, reason := decodeBodySection(word.Rest, q)
		if status != StatusConsumed {
			return nil, nil, status, reason
		}
		return &imap.FetchItemBodySection{Specifier: spec, Peek: peek}, rest, StatusConsumed, ""
	}
	return nil, nil, StatusFailed, "unsupported fetch item " + upper
}

// decodeFetchAttWord scans a fetch-att keyword. It is a plain atom scan
// except that it also stops at '[', since a fetch-att's keyword attaches
// directly to an optional section without an intervening SP (e.g.
// "BODY.PEEK[1.TEXT]") and '[' is otherwise a legal atom-char.
func decodeFetchAttWord(data []byte) Result[string] {
	n, complete := scanWhile(data, func(b byte) bool { return imap.IsAtomChar(b) && b != '[' })
	if !complete {
		return Incomplete[string]()
	}
	if n == 0 {
		return Failed[string]("expected fetch attribute")
	}
	return Consumed(string(data[:n]), data[n:])
}

// decodeBodySection decodes a section-spec: "[" followed by an optional
// part-path (dot-separated numbers), an optional trailing text specifier
// (HEADER, HEADER.FIELDS, HEADER.FIELDS.NOT, MIME, TEXT), and "]". A
// HEADER.FIELDS/HEADER.FIELDS.NOT specifier additionally carries a
// parenthesised list of header field names, which is parsed in full: an
// unparseable or missing field list is a decode failure, never silently
// dropped.
func decodeBodySection(data []byte, q Quirks) (imap.BodySectionSpecifier, []byte, Status, string) {
	b := decodeByte(data, '[')
	if b.Status != StatusConsumed {
		return imap.BodySectionSpecifier{}, nil, b.Status, b.Reason
	}
	rest := b.Rest
	var spec imap.BodySectionSpecifier
	for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		n := decodeNumberRaw(rest)
		switch n.Status {
		case StatusIncomplete:
			return imap.BodySectionSpecifier{}, nil, StatusIncomplete, ""
		case StatusFailed:
			return imap.BodySectionSpecifier{}, nil, StatusFailed, n.Reason
		}
		spec.Part = append(spec.Part, int(n.Value))
		rest = n.Rest
		if len(rest) == 0 {
			return imap.BodySectionSpecifier{}, nil, StatusIncomplete, ""
		}
		if rest[0] != '.' {
			break
		}
		if len(rest) < 2 {
			return imap.BodySectionSpecifier{}, nil, StatusIncomplete, ""
		}
		if rest[1] >= '0' && rest[1] <= '9' {
			rest = rest[1:]
			continue
		}
		rest = rest[1:] // consume the dot introducing a section-text keyword
		break
	}

	if len(rest) == 0 {
		return imap.BodySectionSpecifier{}, nil, StatusIncomplete, ""
	}
	if rest[0] == ']' {
		return spec, rest[1:], StatusConsumed, ""
	}

	kw, rest2, status, reason := decodeSectionKeyword(rest)
	if status != StatusConsumed {
		return imap.BodySectionSpecifier{}, nil, status, reason
	}
	rest = rest2
	spec.HasText = true
	spec.Text = kw

	if kw == "HEADER.FIELDS" || kw == "HEADER.FIELDS.NOT" {
		spec.NotFields = kw == "HEADER.FIELDS.NOT"
		sp := decodeSP(rest)
		if sp.Status != StatusConsumed {
			return imap.BodySectionSpecifier{}, nil, sp.Status, sp.Reason
		}
		fields, rest3, status, reason := decodeHeaderFieldList(sp.Rest, q)
		if status != StatusConsumed {
			return imap.BodySectionSpecifier{}, nil, status, reason
		}
		spec.Fields = fields
		rest = rest3
	}

	c := decodeByte(rest, ']')
	if c.Status != StatusConsumed {
		return imap.BodySectionSpecifier{}, nil, c.Status, c.Reason
	}
	return spec, c.Rest, StatusConsumed, ""
}

// decodeSectionKeyword scans a section-msgtext/section-text keyword: the
// fixed set of names a section spec may carry after its part-path. Unlike
// a generic atom scan it stops at SP too, so a following header field
// list is never absorbed into the keyword.
func decodeSectionKeyword(data []byte) (string, []byte, Status, string) {
	n, complete := scanWhile(data, func(b byte) bool { return b != ']' && b != ' ' })
	if !complete {
		return "", nil, StatusIncomplete, ""
	}
	if n == 0 {
		return "", nil, StatusFailed, "expected section keyword"
	}
	kw := strings.ToUpper(string(data[:n]))
	switch kw {
	case "HEADER", "HEADER.FIELDS", "HEADER.FIELDS.NOT", "MIME", "TEXT":
		return kw, data[n:], StatusConsumed, ""
	default:
		return "", nil, StatusFailed, "unknown section keyword " + kw
	}
}

// decodeHeaderFieldList decodes the parenthesised, space-separated
// header-fld-name list following HEADER.FIELDS/HEADER.FIELDS.NOT.
func decodeHeaderFieldList(data []byte, q Quirks) ([]string, []byte, Status, string) {
	p := decodeByte(data, '(')
	if p.Status != StatusConsumed {
		return nil, nil, p.Status, p.Reason
	}
	var fields []string
	rest := p.Rest
	first := true
	for {
		if len(rest) == 0 {
			return nil, nil, StatusIncomplete, ""
		}
		if rest[0] == ')' {
			if len(fields) == 0 {
				return nil, nil, StatusFailed, "header field list must not be empty"
			}
			return fields, rest[1:], StatusConsumed, ""
		}
		if !first {
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				return nil, nil, sp.Status, sp.Reason
			}
			rest = sp.Rest
		}
		name := decodeAString(rest, q)
		if name.Status != StatusConsumed {
			return nil, nil, name.Status, name.Reason
		}
		fields = append(fields, imap.AStringText(name.Value))
		rest = name.Rest
		first = false
	}
}

func decodeStoreArg(data []byte, q Quirks) (imap.CommandArg, []byte, Status, string) {
	s := decodeSP(data)
	if s.Status != StatusConsumed {
		return nil, nil, s.Status, s.Reason
	}
	set, rest, status, reason := decodeSeqSet(s.Rest)
	if status != StatusConsumed {
		return nil, nil, status, reason
	}

	var mods []imap.StoreModifier
	if len(rest) > 0 {
		sp2 := decodeSP(rest)
		if sp2.Status != StatusConsumed {
			return nil, nil, sp2.Status, sp2.Reason
		}
		if len(sp2.Rest) > 0 && sp2.Rest[0] == '(' {
			rest2 := sp2.Rest[1:]
			name := decodeAtomRaw(rest2)
			if name.Status != StatusConsumed {
				return nil, nil, name.Status, name.Reason
			}
			if strings.EqualFold(name.Value, "UNCHANGEDSINCE") {
				spn := decodeSP(name.Rest)
				if spn.Status != StatusConsumed {
					return nil, nil, spn.Status, spn.Reason
				}
				n := decodeNumber64(spn.Rest)
				if n.Status != StatusConsumed {
					return nil, nil, n.Status, n.Reason
				}
				mods = append(mods, imap.StoreModifierUnchangedSince{ModSeq: n.Value})
				c := decodeByte(n.Rest, ')')
				if c.Status != StatusConsumed {
					return nil, nil, c.Status, c.Reason
				}
				sp3 := decodeSP(c.Rest)
				if sp3.Status != StatusConsumed {
					return nil, nil, sp3.Status, sp3.Reason
				}
				rest = sp3.Rest
			} else {
				return nil, nil, StatusFailed, "unknown store modifier " + name.Value
			}
		} else {
			rest = sp2.Rest
		}
	}

	word := decodeAtomRaw(rest)
	if word.Status != StatusConsumed {
		return nil, nil, word.Status, word.Reason
	}
	upper := strings.ToUpper(word.Value)
	flags := imap.StoreFlags{}
	switch {
	case strings.HasPrefix(upper, "+FLAGS"):
		flags.Action = imap.StoreFlagsAdd
		upper = strings.TrimPrefix(upper, "+FLAGS")
	case strings.HasPrefix(upper, "-FLAGS"):
		flags.Action = imap.StoreFlagsDel
		upper = strings.TrimPrefix(upper, "-FLAGS")
	case strings.HasPrefix(upper, "FLAGS"):
		flags.Action = imap.StoreFlagsSet
		upper = strings.TrimPrefix(upper, "FLAGS")
	default:
		return nil, nil, StatusFailed, "expected FLAGS/+FLAGS/-FLAGS"
	}
	rest = word.Rest
	if strings.EqualFold(upper, ".SILENT") {
		flags.Silent = true
	}

	sp4 := decodeSP(rest)
	if sp4.Status != StatusConsumed {
		return nil, nil, sp4.Status, sp4.Reason
	}
	fl, rest2, status, reason := decodeParenOrSingleFlagList(sp4.Rest)
	if status != StatusConsumed {
		return nil, nil, status, reason
	}
	flags.Flags = fl
	return imap.CommandArgStore{Seqs: set, Flags: flags, Modifiers: mods}, rest2, StatusConsumed, ""
}

func decodeParenOrSingleFlagList(data []byte) ([]imap.Flag, []byte, Status, string) {
	if len(data) > 0 && data[0] == '(' {
		return decodeFlagParenList(data)
	}
	var flags []imap.Flag
	rest := data
	first := true
	for {
		if !first {
			sp := decodeSP(rest)
			if sp.Status != StatusConsumed {
				break
			}
			rest = sp.Rest
		}
		f := decodeFlagRaw(rest)
		if f.Status != StatusConsumed {
			if first {
				return nil, nil, f.Status, f.Reason
			}
			break
		}
		flags = append(flags, imap.Flag(f.Value))
		rest = f.Rest
		first = false
	}
	return flags, rest, StatusConsumed, ""
}

func decodeSearchDate(data []byte) Result[time.Time] {
	if len(data) > 0 && data[0] == '"' {
		q := decodeQuotedString(data)
		if q.Status != StatusConsumed {
			return mapResult(q, func(imap.QuotedString) time.Time { return time.Time{} })
		}
		d, err := imap.ParseSearchDate(q.Value.String())
		if err != nil {
			return Failed[time.Time](err.Error())
		}
		return Consumed(d, q.Rest)
	}
	n, complete := scanWhile(data, func(b byte) bool {
		return (b >= '0' && b <= '9') || b == '-' ||
			(b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
	})
	if !complete {
		return Incomplete[time.Time]()
	}
	d, err := imap.ParseSearchDate(string(data[:n]))
	if err != nil {
		return Failed[time.Time](err.Error())
	}
	return Consumed(d, data[n:])
}
