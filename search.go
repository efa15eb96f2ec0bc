package imap

import "time"

// SearchKey is one search criterion. It is a recursive sum type: And/Or/Not
// compose other SearchKeys, so nesting is part of the type rather than a
// side list of exceptions.
type SearchKey interface {
	isSearchKey()
}

// SearchKeyAll matches every message.
type SearchKeyAll struct{}

func (SearchKeyAll) isSearchKey() {}

// SearchKeyFlag matches messages that have (or, for negated flags such as
// "UNSEEN", lack) the given system flag. Use SearchKeyNot to invert.
type SearchKeyFlag struct{ Flag Flag }

func (SearchKeyFlag) isSearchKey() {}

// SearchKeyKeyword matches messages carrying the given keyword flag.
type SearchKeyKeyword struct{ Keyword Flag }

func (SearchKeyKeyword) isSearchKey() {}

// SearchKeyHeaderField is the named-field search-key family (BCC, CC, FROM,
// SUBJECT, TO) plus the generic HEADER field key.
type SearchKeyHeaderField struct {
	Field string // "BCC", "CC", "FROM", "SUBJECT", "TO", or arbitrary for HEADER
	Value string
}

func (SearchKeyHeaderField) isSearchKey() {}

// SearchKeyBody/Text match the given substring in the body or the whole
// message.
type SearchKeyBody struct{ Value string }

func (SearchKeyBody) isSearchKey() {}

type SearchKeyText struct{ Value string }

func (SearchKeyText) isSearchKey() {}

// SearchKeyDate is the family of date-comparison keys: BEFORE, ON, SINCE,
// SENTBEFORE, SENTON, SENTSINCE.
type SearchKeyDateOp string

const (
	SearchKeyDateBefore     SearchKeyDateOp = "BEFORE"
	SearchKeyDateOn         SearchKeyDateOp = "ON"
	SearchKeyDateSince      SearchKeyDateOp = "SINCE"
	SearchKeyDateSentBefore SearchKeyDateOp = "SENTBEFORE"
	SearchKeyDateSentOn     SearchKeyDateOp = "SENTON"
	SearchKeyDateSentSince  SearchKeyDateOp = "SENTSINCE"
)

type SearchKeyDate struct {
	Op   SearchKeyDateOp
	Date time.Time
}

func (SearchKeyDate) isSearchKey() {}

// SearchKeySize is the LARGER/SMALLER family.
type SearchKeySizeOp string

const (
	SearchKeySizeLarger  SearchKeySizeOp = "LARGER"
	SearchKeySizeSmaller SearchKeySizeOp = "SMALLER"
)

type SearchKeySize struct {
	Op   SearchKeySizeOp
	Size int64
}

func (SearchKeySize) isSearchKey() {}

// SearchKeySeqSet/UIDSet match a sequence-set or UID-set criterion.
type SearchKeySeqSet struct{ Set *SeqSet }

func (SearchKeySeqSet) isSearchKey() {}

type SearchKeyUIDSet struct{ Set *UIDSet }

func (SearchKeyUIDSet) isSearchKey() {}

// SearchKeyAnd is an implicit conjunction of criteria (a parenthesised
// list, or the top-level search-key sequence).
type SearchKeyAnd struct{ Children []SearchKey }

func (SearchKeyAnd) isSearchKey() {}

// SearchKeyOr is the OR search-key: exactly two operands, per grammar.
type SearchKeyOr struct{ Left, Right SearchKey }

func (SearchKeyOr) isSearchKey() {}

// SearchKeyNot negates a single operand.
type SearchKeyNot struct{ Child SearchKey }

func (SearchKeyNot) isSearchKey() {}

// SearchKeyModSeq is the MODSEQ search-key (CONDSTORE), with an optional
// entry-name/entry-type qualifier.
type SearchKeyModSeq struct {
	ModSeq       uint64
	MetadataName string
	MetadataType string // "shared", "priv", "all", or empty if unqualified
}

func (SearchKeyModSeq) isSearchKey() {}

// SearchKeyOlder/Younger are the WITHIN extension (RFC 5032), in seconds.
type SearchKeyOlder struct{ Seconds int64 }

func (SearchKeyOlder) isSearchKey() {}

type SearchKeyYounger struct{ Seconds int64 }

func (SearchKeyYounger) isSearchKey() {}

// SearchKeyCharset wraps a search-key tree with the CHARSET name the
// strings inside it are encoded in.
type SearchKeyCharset struct {
	Charset string
	Key     SearchKey
}

func (SearchKeyCharset) isSearchKey() {}

// SearchReturnOpt is one member of a SEARCH/UID SEARCH RETURN option list.
type SearchReturnOpt string

const (
	SearchReturnMin     SearchReturnOpt = "MIN"
	SearchReturnMax     SearchReturnOpt = "MAX"
	SearchReturnAll     SearchReturnOpt = "ALL"
	SearchReturnCount   SearchReturnOpt = "COUNT"
	SearchReturnSave    SearchReturnOpt = "SAVE"
)

// SearchReturnPartial is the PARTIAL return option (RFC 9394): a possibly
// end-relative 1-based range.
type SearchReturnPartial struct {
	Offset int32 // negative is end-relative
	Count  uint32
}

// ESearchData is the result of a SEARCH command that requested ESEARCH
// return options (RFC 4731/9394).
type ESearchData struct {
	Tag    Tag
	HasTag bool
	UID    bool

	HasMin bool
	Min    uint32
	HasMax bool
	Max    uint32
	HasAll bool
	All    NumSet
	HasCount bool
	Count  uint32
	HasModSeq bool
	ModSeq uint64

	Partial    *SearchReturnPartial
	PartialSet NumSet
}
