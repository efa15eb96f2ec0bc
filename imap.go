// Package imap is the type lattice for IMAP4rev1 (RFC 3501) and the
// extensions this codec selects: STARTTLS, CONDSTORE/QRESYNC (RFC 7162),
// ID (RFC 2971), LOGIN/MAILBOX REFERRALS (RFC 2221, RFC 2193), and
// METADATA (RFC 5464). Every exported type here is either a leaf value
// validated at construction (see string.go) or a product/sum type built
// from those leaves; no exported constructor can produce a value that
// violates the grammar it represents.
//
// Session state (authenticated/selected/idle), mailbox storage, and
// authentication backends are not modeled here — they are the caller's
// concern. See package wire for the decoder and encoder that move values
// of these types to and from the wire.
package imap

import (
	"fmt"
	"strings"
	"time"
)

// MaxBodyStructureDepth bounds BODYSTRUCTURE recursion during decoding, so
// that a hostile or buggy peer cannot drive the parser into a stack
// overflow with deeply nested multipart bodies.
const MaxBodyStructureDepth = 1024

// Flag is an IMAP message flag: either one of the system flags (all
// beginning with a backslash) or a caller-defined keyword atom.
type Flag string

// System flags defined by RFC 3501/9051.
const (
	FlagSeen     Flag = "\\Seen"
	FlagAnswered Flag = "\\Answered"
	FlagFlagged  Flag = "\\Flagged"
	FlagDeleted  Flag = "\\Deleted"
	FlagDraft    Flag = "\\Draft"
	FlagRecent   Flag = "\\Recent" // IMAP4rev1 only, removed in rev2
	FlagWildcard Flag = "\\*"      // permanent-flags wildcard
)

// NewFlag validates s as a flag: either a backslash followed by an atom
// (a system or other "\\"-prefixed flag), or a bare atom (a keyword).
func NewFlag(s string) (Flag, error) {
	body := s
	if strings.HasPrefix(s, "\\") {
		body = s[1:]
	}
	if _, err := NewAtom(body); err != nil {
		return "", err
	}
	return Flag(s), nil
}

// IsSystem reports whether f is one of the backslash-prefixed system
// flags rather than a caller-defined keyword.
func (f Flag) IsSystem() bool { return strings.HasPrefix(string(f), "\\") }

// MailboxAttr is a mailbox attribute, as returned in a LIST/LSUB response.
type MailboxAttr string

// Standard mailbox attributes.
const (
	MailboxAttrNoInferiors   MailboxAttr = "\\Noinferiors"
	MailboxAttrNoSelect      MailboxAttr = "\\Noselect"
	MailboxAttrMarked        MailboxAttr = "\\Marked"
	MailboxAttrUnmarked      MailboxAttr = "\\Unmarked"
	MailboxAttrHasChildren   MailboxAttr = "\\HasChildren"
	MailboxAttrHasNoChildren MailboxAttr = "\\HasNoChildren"
	MailboxAttrNonExistent   MailboxAttr = "\\NonExistent"
	MailboxAttrSubscribed    MailboxAttr = "\\Subscribed"
	MailboxAttrRemote        MailboxAttr = "\\Remote"
)

// SectionPartial is the <offset.count> partial-fetch modifier on a BODY or
// BODY.PEEK fetch item.
type SectionPartial struct {
	Offset int64
	Count  int64
}

// Address is a single address in an envelope field (RFC 2822 mailbox).
// All of Name/Mailbox/Host may be absent (nil) on the wire; Go zero values
// (empty string) stand in for NIL here since an address list item is never
// itself the top-level NString.
type Address struct {
	Name    string
	AtDomainList string
	Mailbox string
	Host    string
}

// String returns the address in "Name <mailbox@host>" form, or a group
// marker (Mailbox, empty Host) as produced by RFC 2822 group syntax.
func (a *Address) String() string {
	if a.Host == "" {
		return a.Mailbox
	}
	addr := a.Mailbox + "@" + a.Host
	if a.Name != "" {
		return fmt.Sprintf("%s <%s>", a.Name, addr)
	}
	return addr
}

// Envelope is the ENVELOPE fetch data item: the RFC 2822 header fields of
// a message, as produced by a server without parsing the full message.
type Envelope struct {
	Date time.Time
	// DateText is the date field's exact wire text (nil if HasDate is
	// false). RFC 2822 date-times admit a free-form trailing comment (a
	// zone name such as "(PDT)") that time.Time/time.Format cannot
	// reproduce byte-for-byte, so the decoder keeps the original text
	// alongside the best-effort parse in Date.
	DateText string
	HasDate  bool
	Subject  string
	From      []Address
	Sender    []Address
	ReplyTo   []Address
	To        []Address
	Cc        []Address
	Bcc       []Address
	InReplyTo string
	MessageID string
}

// BodyExtension preserves a vendor-specific trailing extension in a
// body-ext-1part/mpart production losslessly: a BODYSTRUCTURE may carry
// fields beyond RFC 3501's named ones, and §9's open question says they
// must round-trip even though their shape is not standardised further.
type BodyExtension struct {
	// Str is set when the extension is a single nstring token.
	Str NString
	// HasNumber/Number hold a bare numeric extension token (never both
	// Str and Number are meaningful at once).
	HasNumber bool
	Number    uint32
	// List holds a parenthesised list of further extensions.
	List []BodyExtension
}

// BodyStructure is the recursive BODY/BODYSTRUCTURE tree (§3). A leaf node
// has Type != "multipart" and no Children; a multipart node has
// Type == "multipart", at least one child, and no leaf-only fields set.
type BodyStructure struct {
	Type    string
	Subtype string

	// Params holds the leaf node's Content-Type parameters, or, on a
	// multipart node with Extended set, the multipart's own parameters
	// (e.g. "boundary") from its body-ext-mpart.
	Params      map[string]string
	ID          string
	HasID       bool
	Description string
	HasDescription bool
	Encoding    string
	Size        uint32

	// Present only for type "message" with subtype "rfc822".
	Envelope      *Envelope
	BodyStructure *BodyStructure

	// Present only for type "text" or "message"/"rfc822".
	HasLines bool
	Lines    uint32

	// Extended fields, present only in BODYSTRUCTURE (never plain BODY).
	Extended           bool
	MD5                string
	HasMD5             bool
	DispositionType    string
	HasDisposition     bool
	DispositionParams  map[string]string
	Language           []string
	Location           string
	HasLocation        bool
	TrailingExtensions []BodyExtension

	// Multipart-only fields.
	Children []BodyStructure
}

// IsMultipart reports whether bs is a multipart node.
func (bs *BodyStructure) IsMultipart() bool {
	return strings.EqualFold(bs.Type, "multipart")
}

// Depth returns the recursion depth of bs (1 for a leaf or childless
// multipart), used to enforce MaxBodyStructureDepth while decoding.
func (bs *BodyStructure) Depth() int {
	max := 0
	for i := range bs.Children {
		if d := bs.Children[i].Depth(); d > max {
			max = d
		}
	}
	if bs.BodyStructure != nil {
		if d := bs.BodyStructure.Depth() + 1; d > max {
			max = d
		}
	}
	return max + 1
}

// InternalDateLayout is the wire format for an IMAP internal date /
// date-time: `"DD-Mon-YYYY HH:MM:SS +HHMM"`.
const InternalDateLayout = "02-Jan-2006 15:04:05 -0700"

// InternalDate is an IMAP internal date-time, always carrying a zone
// offset in [-1439, +1439] minutes as required by §3.
type InternalDate struct {
	t time.Time
}

// NewInternalDate validates t's offset and wraps it.
func NewInternalDate(t time.Time) (InternalDate, error) {
	_, offsetSec := t.Zone()
	offsetMin := offsetSec / 60
	if offsetMin < -1439 || offsetMin > 1439 {
		return InternalDate{}, newValidationError("date-time zone offset out of range [-1439, 1439] minutes")
	}
	return InternalDate{t: t}, nil
}

// Time returns the wrapped time.Time.
func (d InternalDate) Time() time.Time { return d.t }

// String returns the date in IMAP wire format.
func (d InternalDate) String() string {
	return d.t.Format(InternalDateLayout)
}

// ParseInternalDate parses a date-time string in InternalDateLayout.
func ParseInternalDate(s string) (InternalDate, error) {
	t, err := time.Parse(InternalDateLayout, s)
	if err != nil {
		return InternalDate{}, newValidationError("malformed internal date: " + err.Error())
	}
	return NewInternalDate(t)
}

// SearchDateLayout is the wire format of a search-key date (date, no
// time-of-day or zone): `"DD-Mon-YYYY"`.
const SearchDateLayout = "02-Jan-2006"

// ParseSearchDate parses a bare or quoted date string as used by the
// date-comparison search keys.
func ParseSearchDate(s string) (time.Time, error) {
	s = strings.Trim(s, `"`)
	t, err := time.Parse(SearchDateLayout, s)
	if err != nil {
		return time.Time{}, newValidationError("malformed search date: " + err.Error())
	}
	return t, nil
}
