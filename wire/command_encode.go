package wire

import (
	"strconv"
	"strings"

	"github.com/corvidmail/imapcodec"
)

// EncodeCommand encodes one client command line.
func EncodeCommand(c imap.Command) []Fragment {
	b := &builder{}
	b.writeString(c.Tag.String())
	b.writeByte(' ')
	if c.UID {
		b.writeString("UID ")
	}
	b.writeString(string(c.Kind))
	encodeCommandArg(b, c.Kind, c.Arg)
	b.writeString("\r\n")
	return b.fragments()
}

func encodeCommandArg(b *builder, kind imap.CommandKind, arg imap.CommandArg) {
	switch a := arg.(type) {
	case imap.CommandArgLogin:
		b.writeByte(' ')
		writeAString(b, a.Username)
		b.writeByte(' ')
		writeAString(b, a.Password)

	case imap.CommandArgAuthenticate:
		b.writeByte(' ')
		b.writeString(a.Mechanism.String())
		if a.HasInitialResp {
			b.writeByte(' ')
			b.writeString(encodeBase64(a.InitialResp))
		}

	case imap.CommandArgEnable:
		for _, c := range a.Caps {
			b.writeByte(' ')
			b.writeString(string(c))
		}

	case imap.CommandArgSelect:
		b.writeByte(' ')
		writeMailbox(b, a.Mailbox)
		if len(a.Modifiers) > 0 {
			b.writeString(" (")
			for i, m := range a.Modifiers {
				if i > 0 {
					b.writeByte(' ')
				}
				encodeSelectModifier(b, m)
			}
			b.writeByte(')')
		}

	case imap.CommandArgMailbox:
		b.writeByte(' ')
		writeMailbox(b, a.Mailbox)

	case imap.CommandArgRename:
		b.writeByte(' ')
		writeMailbox(b, a.From)
		b.writeByte(' ')
		writeMailbox(b, a.To)

	case imap.CommandArgList:
		encodeListArg(b, a)

	case imap.CommandArgStatus:
		b.writeByte(' ')
		writeMailbox(b, a.Mailbox)
		b.writeString(" (")
		for i, it := range a.Items {
			if i > 0 {
				b.writeByte(' ')
			}
			b.writeString(string(it))
		}
		b.writeByte(')')

	case imap.CommandArgAppend:
		b.writeByte(' ')
		writeMailbox(b, a.Mailbox)
		if len(a.Options.Flags) > 0 {
			b.writeByte(' ')
			writeFlags(b, a.Options.Flags)
		}
		if a.Options.HasInternalDate {
			b.writeByte(' ')
			writeQuoted(b, a.Options.InternalDate.String())
		}
		b.writeByte(' ')
		writeAString(b, a.Literal)

	case imap.CommandArgSearch:
		encodeSearchArg(b, a)

	case imap.CommandArgFetch:
		b.writeByte(' ')
		writeNumSet(b, a.Seqs)
		b.writeByte(' ')
		encodeFetchItems(b, a.Items)
		if len(a.Modifiers) > 0 {
			b.writeString(" (")
			for i, m := range a.Modifiers {
				if i > 0 {
					b.writeByte(' ')
				}
				encodeFetchModifier(b, m)
			}
			b.writeByte(')')
		}

	case imap.CommandArgStore:
		b.writeByte(' ')
		writeNumSet(b, a.Seqs)
		if len(a.Modifiers) > 0 {
			b.writeString(" (")
			for i, m := range a.Modifiers {
				if i > 0 {
					b.writeByte(' ')
				}
				if us, ok := m.(imap.StoreModifierUnchangedSince); ok {
					b.writeString("UNCHANGEDSINCE ")
					b.writeString(strconv.FormatUint(us.ModSeq, 10))
				}
			}
			b.writeByte(')')
		}
		b.writeByte(' ')
		b.writeString(a.Flags.Action.String())
		if a.Flags.Silent {
			b.writeString(".SILENT")
		}
		b.writeByte(' ')
		writeFlags(b, a.Flags.Flags)

	case imap.CommandArgCopy:
		b.writeByte(' ')
		writeNumSet(b, a.Seqs)
		b.writeByte(' ')
		writeMailbox(b, a.Mailbox)

	case imap.CommandArgGetMetadata:
		b.writeByte(' ')
		if a.Options.HasMaxSize || a.Options.Depth != "" && a.Options.Depth != imap.MetadataDepthZero {
			b.writeByte('(')
			first := true
			if a.Options.Depth != "" {
				b.writeString("DEPTH ")
				b.writeString(string(a.Options.Depth))
				first = false
			}
			if a.Options.HasMaxSize {
				if !first {
					b.writeByte(' ')
				}
				b.writeString("MAXSIZE ")
				b.writeString(strconv.FormatUint(uint64(a.Options.MaxSize), 10))
			}
			b.writeString(") ")
		}
		writeMailbox(b, a.Mailbox)
		b.writeByte(' ')
		if len(a.Entries) == 1 {
			writeQuoted(b, a.Entries[0])
		} else {
			b.writeByte('(')
			for i, e := range a.Entries {
				if i > 0 {
					b.writeByte(' ')
				}
				writeQuoted(b, e)
			}
			b.writeByte(')')
		}

	case imap.CommandArgSetMetadata:
		b.writeByte(' ')
		writeMailbox(b, a.Mailbox)
		b.writeString(" (")
		for i, e := range a.Entries {
			if i > 0 {
				b.writeByte(' ')
			}
			writeQuoted(b, e.Name)
			b.writeByte(' ')
			writeNString(b, e.Value)
		}
		b.writeByte(')')

	case imap.CommandArgID:
		b.writeByte(' ')
		encodeIDParams(b, a.Params, a.HasParams)
	}
}

func encodeSelectModifier(b *builder, m imap.SelectModifier) {
	switch v := m.(type) {
	case imap.SelectModifierCondStore:
		b.writeString("CONDSTORE")
	case imap.SelectModifierQResync:
		b.writeString("QRESYNC (")
		b.writeString(strconv.FormatUint(uint64(v.Param.UIDValidity), 10))
		b.writeByte(' ')
		b.writeString(strconv.FormatUint(v.Param.ModSeq, 10))
		if v.Param.HasKnownUIDs {
			b.writeByte(' ')
			b.writeString(v.Param.KnownUIDs.String())
		}
		b.writeByte(')')
	}
}

func encodeListArg(b *builder, a imap.CommandArgList) {
	b.writeByte(' ')
	if len(a.SelectOpts) > 0 {
		b.writeByte('(')
		for i, o := range a.SelectOpts {
			if i > 0 {
				b.writeByte(' ')
			}
			b.writeString(string(o))
		}
		b.writeString(") ")
	}
	writeMailbox(b, a.Reference)
	b.writeByte(' ')
	if len(a.Pattern) == 1 {
		writeMailbox(b, a.Pattern[0])
	} else {
		b.writeByte('(')
		for i, p := range a.Pattern {
			if i > 0 {
				b.writeByte(' ')
			}
			writeMailbox(b, p)
		}
		b.writeByte(')')
	}
	if len(a.ReturnOpts) > 0 {
		b.writeString(" RETURN (")
		for i, o := range a.ReturnOpts {
			if i > 0 {
				b.writeByte(' ')
			}
			b.writeString(string(o))
		}
		b.writeByte(')')
	}
}

func encodeSearchArg(b *builder, a imap.CommandArgSearch) {
	b.writeByte(' ')
	if len(a.Return) > 0 {
		b.writeString("RETURN (")
		for i, o := range a.Return {
			if i > 0 {
				b.writeByte(' ')
			}
			b.writeString(string(o))
		}
		b.writeString(") ")
	}
	if a.HasCharset {
		b.writeString("CHARSET ")
		b.writeString(a.Charset)
		b.writeByte(' ')
	}
	encodeSearchKey(b, a.Key)
}

func encodeSearchKey(b *builder, k imap.SearchKey) {
	switch v := k.(type) {
	case imap.SearchKeyAll:
		b.writeString("ALL")
	case imap.SearchKeyFlag:
		b.writeString(strings.ToUpper(strings.TrimPrefix(string(v.Flag), "\\")))
	case imap.SearchKeyKeyword:
		b.writeString("KEYWORD ")
		b.writeString(string(v.Keyword))
	case imap.SearchKeyHeaderField:
		switch v.Field {
		case "BCC", "CC", "FROM", "SUBJECT", "TO":
			b.writeString(v.Field)
			b.writeByte(' ')
			writeAString(b, imap.NewAString(v.Value))
		default:
			b.writeString("HEADER ")
			writeAString(b, imap.NewAString(v.Field))
			b.writeByte(' ')
			writeAString(b, imap.NewAString(v.Value))
		}
	case imap.SearchKeyBody:
		b.writeString("BODY ")
		writeAString(b, imap.NewAString(v.Value))
	case imap.SearchKeyText:
		b.writeString("TEXT ")
		writeAString(b, imap.NewAString(v.Value))
	case imap.SearchKeyDate:
		b.writeString(string(v.Op))
		b.writeByte(' ')
		b.writeString(v.Date.Format(imap.SearchDateLayout))
	case imap.SearchKeySize:
		b.writeString(string(v.Op))
		b.writeByte(' ')
		b.writeString(strconv.FormatInt(v.Size, 10))
	case imap.SearchKeySeqSet:
		b.writeString(v.Set.String())
	case imap.SearchKeyUIDSet:
		b.writeString("UID ")
		b.writeString(v.Set.String())
	case imap.SearchKeyAnd:
		for i, c := range v.Children {
			if i > 0 {
				b.writeByte(' ')
			}
			encodeSearchKey(b, c)
		}
	case imap.SearchKeyOr:
		b.writeString("OR ")
		encodeSearchKey(b, v.Left)
		b.writeByte(' ')
		encodeSearchKey(b, v.Right)
	case imap.SearchKeyNot:
		b.writeString("NOT ")
		encodeSearchKey(b, v.Child)
	case imap.SearchKeyModSeq:
		b.writeString("MODSEQ ")
		b.writeString(strconv.FormatUint(v.ModSeq, 10))
	case imap.SearchKeyOlder:
		b.writeString("OLDER ")
		b.writeString(strconv.FormatInt(v.Seconds, 10))
	case imap.SearchKeyYounger:
		b.writeString("YOUNGER ")
		b.writeString(strconv.FormatInt(v.Seconds, 10))
	case imap.SearchKeyCharset:
		encodeSearchKey(b, v.Key)
	}
}

func encodeFetchItems(b *builder, items []imap.FetchItem) {
	if len(items) == 1 {
		encodeFetchItem(b, items[0])
		return
	}
	b.writeByte('(')
	for i, it := range items {
		if i > 0 {
			b.writeByte(' ')
		}
		encodeFetchItem(b, it)
	}
	b.writeByte(')')
}

func encodeFetchItem(b *builder, it imap.FetchItem) {
	switch v := it.(type) {
	case imap.FetchItemFixed:
		b.writeString(string(v))
	case imap.FetchItemModSeq:
		b.writeString("MODSEQ")
	case *imap.FetchItemBodySection:
		if v.Peek {
			b.writeString("BODY.PEEK[")
		} else {
			b.writeString("BODY[")
		}
		for i, p := range v.Specifier.Part {
			if i > 0 {
				b.writeByte('.')
			}
			b.writeString(strconv.Itoa(p))
		}
		if v.Specifier.HasText {
			if len(v.Specifier.Part) > 0 {
				b.writeByte('.')
			}
			b.writeString(v.Specifier.Text)
			if v.Specifier.Text == "HEADER.FIELDS" || v.Specifier.Text == "HEADER.FIELDS.NOT" {
				b.writeString(" (")
				for i, f := range v.Specifier.Fields {
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
}

func encodeFetchModifier(b *builder, m imap.FetchModifier) {
	switch v := m.(type) {
	case imap.FetchModifierChangedSince:
		b.writeString("CHANGEDSINCE ")
		b.writeString(strconv.FormatUint(v.ModSeq, 10))
	case imap.FetchModifierVanished:
		b.writeString("VANISHED")
	}
}
