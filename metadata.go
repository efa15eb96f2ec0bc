package imap

// MetadataDepth is the DEPTH option of GETMETADATA (RFC 5464).
type MetadataDepth string

const (
	MetadataDepthZero     MetadataDepth = "0"
	MetadataDepthOne      MetadataDepth = "1"
	MetadataDepthInfinity MetadataDepth = "infinity"
)

// MetadataEntry is a single entry name/value pair in a SETMETADATA
// command. A Nil value requests the entry be removed.
type MetadataEntry struct {
	Name  string
	Value NString
}

// GetMetadataOptions are the options of a GETMETADATA command.
type GetMetadataOptions struct {
	MaxSize    uint32
	HasMaxSize bool
	Depth      MetadataDepth
}

// MetadataData is the result of a GETMETADATA command: the queried
// mailbox (empty for server-level annotations) and the resolved entries.
type MetadataData struct {
	Mailbox Mailbox
	HasMailbox bool
	Entries    []MetadataEntry
}
