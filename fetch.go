package imap

// FetchItem is one requested data item in a FETCH command argument list.
type FetchItem interface {
	isFetchItem()
}

// FetchItemFlags/Envelope/etc. are the fixed, argument-less fetch items.
type FetchItemFixed string

const (
	FetchItemFlags         FetchItemFixed = "FLAGS"
	FetchItemEnvelope      FetchItemFixed = "ENVELOPE"
	FetchItemBodyStructure FetchItemFixed = "BODYSTRUCTURE"
	FetchItemBody          FetchItemFixed = "BODY"
	FetchItemInternalDate  FetchItemFixed = "INTERNALDATE"
	FetchItemRFC822Size    FetchItemFixed = "RFC822.SIZE"
	FetchItemUID           FetchItemFixed = "UID"
	FetchItemFast          FetchItemFixed = "FAST"  // macro
	FetchItemAll           FetchItemFixed = "ALL"   // macro
	FetchItemFull          FetchItemFixed = "FULL"  // macro
	FetchItemPreview       FetchItemFixed = "PREVIEW"
	FetchItemSaveDate      FetchItemFixed = "SAVEDATE"
	FetchItemEmailID       FetchItemFixed = "EMAILID"
	FetchItemThreadID      FetchItemFixed = "THREADID"
)

func (FetchItemFixed) isFetchItem() {}

// FetchItemModSeq is the MODSEQ fetch item (CONDSTORE).
type FetchItemModSeq struct{}

func (FetchItemModSeq) isFetchItem() {}

// BodySectionSpecifier names the part of a BODY[...]/BODY.PEEK[...] fetch
// item, following the section-spec grammar: a part path followed by an
// optional text specifier.
type BodySectionSpecifier struct {
	Part []int

	HasText   bool
	Text      string // HEADER, HEADER.FIELDS, HEADER.FIELDS.NOT, MIME, TEXT
	Fields    []string
	NotFields bool
}

// FetchItemBodySection is a BODY[section] or BODY.PEEK[section] fetch item.
type FetchItemBodySection struct {
	Specifier BodySectionSpecifier
	Peek      bool
	Partial   *SectionPartial
}

func (*FetchItemBodySection) isFetchItem() {}

// FetchItemBinarySection is a BINARY[section] or BINARY.PEEK[section] fetch
// item (RFC 3516).
type FetchItemBinarySection struct {
	Part    []int
	Peek    bool
	Partial *SectionPartial
}

func (*FetchItemBinarySection) isFetchItem() {}

// FetchItemBinarySizeSection is a BINARY.SIZE[section] fetch item.
type FetchItemBinarySizeSection struct {
	Part []int
}

func (*FetchItemBinarySizeSection) isFetchItem() {}

// FetchModifier is a FETCH command modifier, e.g. CHANGEDSINCE or VANISHED.
type FetchModifier interface {
	isFetchModifier()
}

// FetchModifierChangedSince is the CHANGEDSINCE modifier (CONDSTORE).
type FetchModifierChangedSince struct{ ModSeq uint64 }

func (FetchModifierChangedSince) isFetchModifier() {}

// FetchModifierVanished is the VANISHED modifier (QRESYNC); only legal
// alongside UID FETCH and CHANGEDSINCE.
type FetchModifierVanished struct{}

func (FetchModifierVanished) isFetchModifier() {}

// FetchDataItemKind discriminates a FetchDataItem in a server FETCH response.
type FetchDataItemKind string

const (
	FetchDataFlags         FetchDataItemKind = "FLAGS"
	FetchDataEnvelope      FetchDataItemKind = "ENVELOPE"
	FetchDataBodyStructure FetchDataItemKind = "BODYSTRUCTURE"
	FetchDataBody          FetchDataItemKind = "BODY"
	FetchDataBodySection   FetchDataItemKind = "BODY[]"
	FetchDataBinarySection FetchDataItemKind = "BINARY[]"
	FetchDataBinarySize    FetchDataItemKind = "BINARY.SIZE[]"
	FetchDataInternalDate  FetchDataItemKind = "INTERNALDATE"
	FetchDataRFC822Size    FetchDataItemKind = "RFC822.SIZE"
	FetchDataUID           FetchDataItemKind = "UID"
	FetchDataModSeq        FetchDataItemKind = "MODSEQ"
	FetchDataPreview       FetchDataItemKind = "PREVIEW"
	FetchDataSaveDate      FetchDataItemKind = "SAVEDATE"
	FetchDataEmailID       FetchDataItemKind = "EMAILID"
	FetchDataThreadID      FetchDataItemKind = "THREADID"
)

// FetchDataItem is one data item inside a FETCH response's parenthesised
// list. Exactly one field group is meaningful, selected by Kind.
type FetchDataItem struct {
	Kind FetchDataItemKind

	Flags         []Flag
	Envelope      *Envelope
	BodyStructure *BodyStructure

	Section      *BodySectionSpecifier
	BinaryPart   []int
	Literal      Literal
	HasLiteral   bool

	BinarySize uint32

	InternalDate InternalDate
	RFC822Size   uint32
	UID          UID
	ModSeq       uint64

	Preview      NString
	SaveDate     NString
	EmailID      string
	ThreadID     string
}
