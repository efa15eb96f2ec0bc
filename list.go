package imap

// ListSelectOpt is one selection option in the extended LIST command
// (RFC 5258): SUBSCRIBED, REMOTE, RECURSIVEMATCH.
type ListSelectOpt string

const (
	ListSelectSubscribed    ListSelectOpt = "SUBSCRIBED"
	ListSelectRemote        ListSelectOpt = "REMOTE"
	ListSelectRecursiveMatch ListSelectOpt = "RECURSIVEMATCH"
	ListSelectSpecialUse    ListSelectOpt = "SPECIAL-USE"
)

// ListReturnOpt is one member of a LIST RETURN option list.
type ListReturnOpt string

const (
	ListReturnSubscribed ListReturnOpt = "SUBSCRIBED"
	ListReturnChildren   ListReturnOpt = "CHILDREN"
	ListReturnSpecialUse ListReturnOpt = "SPECIAL-USE"
	ListReturnMyRights   ListReturnOpt = "MYRIGHTS"
)

// ListReturnStatus is the STATUS return option: a LIST response carries
// along the named STATUS items for each matching mailbox (RFC 5819).
type ListReturnStatus struct {
	Items []StatusItem
}

// ListReturnMetadata is the METADATA return option (RFC 9590).
type ListReturnMetadata struct {
	Entries []string
	MaxSize int64
	HasMaxSize bool
	Depth   MetadataDepth
}

// ListData is the data carried by one untagged LIST/LSUB response.
type ListData struct {
	Attrs   []MailboxAttr
	Delim   byte
	HasDelim bool
	Mailbox Mailbox

	// Extended data, present only when the matching LIST selection or
	// return options were requested.
	OldName   Mailbox
	HasOldName bool
	ChildInfo []string
	Status    *StatusData
	MyRights  string
	Metadata  map[string]NString
}
