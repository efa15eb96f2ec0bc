package imap

import (
	"fmt"
	"strings"
)

// GreetingKind is the status word of a server greeting.
type GreetingKind string

const (
	GreetingOK      GreetingKind = "OK"
	GreetingPreAuth GreetingKind = "PREAUTH"
	GreetingBye     GreetingKind = "BYE"
)

// Greeting is the server's first line on a new connection.
type Greeting struct {
	Kind    GreetingKind
	Code    Code
	CodeArg CodeArg // nil if Code == ""
	Text    Text
}

// StatusKind is the status word of a status response (tagged or not).
type StatusKind string

const (
	StatusOK      StatusKind = "OK"
	StatusNo      StatusKind = "NO"
	StatusBad     StatusKind = "BAD"
	StatusPreAuth StatusKind = "PREAUTH"
	StatusBye     StatusKind = "BYE"
)

// StatusResponse is a tagged or untagged status reply. Tagged is false for
// an untagged ("*") response, in which case Tag is the zero value.
type StatusResponse struct {
	Tag     Tag
	Tagged  bool
	Kind    StatusKind
	Code    Code
	CodeArg CodeArg // nil if Code == ""
	Text    Text
}

// Error renders the status response as an error string, in the same shape
// a human would read it in a mail client's protocol log.
func (r *StatusResponse) Error() string {
	var b strings.Builder
	b.WriteString(string(r.Kind))
	if r.Code != "" {
		fmt.Fprintf(&b, " [%s]", r.Code)
	}
	if r.Text.String() != "" {
		b.WriteString(" ")
		b.WriteString(r.Text.String())
	}
	return b.String()
}

// DataKind names which untagged Data variant a Data value holds.
type DataKind string

const (
	DataExists     DataKind = "EXISTS"
	DataRecent     DataKind = "RECENT"
	DataExpunge    DataKind = "EXPUNGE"
	DataFetch      DataKind = "FETCH"
	DataList       DataKind = "LIST"
	DataLSub       DataKind = "LSUB"
	DataSearch     DataKind = "SEARCH"
	DataESearch    DataKind = "ESEARCH"
	DataStatus     DataKind = "STATUS"
	DataCapability DataKind = "CAPABILITY"
	DataFlags      DataKind = "FLAGS"
	DataEnabled    DataKind = "ENABLED"
	DataID         DataKind = "ID"
	DataMetadata   DataKind = "METADATA"
	DataVanished   DataKind = "VANISHED" // QRESYNC
)

// Data is one untagged response-data item. Exactly one group of the typed
// fields below is meaningful, selected by Kind.
type Data struct {
	Kind DataKind

	// DataExists / DataRecent.
	Num uint32

	// DataExpunge.
	ExpungeSeqNum uint32

	// DataFetch.
	FetchSeqNum uint32
	FetchItems  []FetchDataItem

	// DataList / DataLSub.
	List *ListData

	// DataSearch.
	SearchNums []uint32
	SearchModSeq    uint64
	SearchHasModSeq bool

	// DataESearch.
	ESearch *ESearchData

	// DataStatus.
	Status *StatusData

	// DataCapability.
	Caps []Cap

	// DataFlags.
	Flags []Flag

	// DataEnabled.
	EnabledCaps []Cap

	// DataID.
	ID IDParams

	// DataMetadata.
	Metadata *MetadataData

	// DataVanished (QRESYNC): the UIDs of expunged messages, and whether
	// this is an EARLIER report (piggy-backed on SELECT/EXAMINE QRESYNC
	// parameters) or a live VANISHED sent during the session.
	VanishedUIDs    UIDSet
	VanishedEarlier bool
}

// ResponseKind discriminates the Response sum.
type ResponseKind int

const (
	ResponseStatus ResponseKind = iota
	ResponseData
	ResponseContinue
)

// Response is one server response line: a status reply, an untagged data
// item, or a continuation request. Exactly one of Status/Data/Continue is
// non-nil, selected by Kind.
type Response struct {
	Kind     ResponseKind
	Status   *StatusResponse
	Data     *Data
	Continue *ContinueRequest
}

// ContinueRequest is a `+ ...` continuation request.
type ContinueRequest struct {
	// HasBase64 selects a SASL challenge (AUTHENTICATE exchange) over
	// plain human-readable Text.
	HasBase64 bool
	Base64    []byte
	Text      Text
}

// AuthenticateData is one line of a client SASL exchange: either a
// base64-encoded response or "*" to cancel.
type AuthenticateData struct {
	Cancel bool
	Base64 []byte
}

// IdleDone is the fixed token "DONE" that ends a client IDLE.
type IdleDone struct{}

// ErrNo builds an untagged NO status response with the given text.
func ErrNo(text string) *StatusResponse {
	t, _ := NewText(text)
	return &StatusResponse{Kind: StatusNo, Text: t}
}

// ErrBad builds an untagged BAD status response with the given text.
func ErrBad(text string) *StatusResponse {
	t, _ := NewText(text)
	return &StatusResponse{Kind: StatusBad, Text: t}
}

// ErrBye builds an untagged BYE status response with the given text.
func ErrBye(text string) *StatusResponse {
	t, _ := NewText(text)
	return &StatusResponse{Kind: StatusBye, Text: t}
}
