package imap

// StatusItem names one attribute a STATUS command can request.
type StatusItem string

const (
	StatusItemNumMessages   StatusItem = "MESSAGES"
	StatusItemUIDNext       StatusItem = "UIDNEXT"
	StatusItemUIDValidity   StatusItem = "UIDVALIDITY"
	StatusItemNumUnseen     StatusItem = "UNSEEN"
	StatusItemNumRecent     StatusItem = "RECENT" // IMAP4rev1 only
	StatusItemSize          StatusItem = "SIZE"
	StatusItemAppendLimit   StatusItem = "APPENDLIMIT"
	StatusItemHighestModSeq StatusItem = "HIGHESTMODSEQ"
	StatusItemMailboxID     StatusItem = "MAILBOXID"
	StatusItemDeleted       StatusItem = "DELETED"
)

// StatusData is the data returned by a STATUS command, or piggy-backed on
// an extended LIST response.
type StatusData struct {
	Mailbox Mailbox

	NumMessages   uint32
	HasNumMessages bool
	UIDNext       uint32
	HasUIDNext    bool
	UIDValidity   uint32
	HasUIDValidity bool
	NumUnseen     uint32
	HasNumUnseen  bool
	NumRecent     uint32
	HasNumRecent  bool
	Size          int64
	HasSize       bool
	AppendLimit   uint32
	HasAppendLimit bool
	HighestModSeq uint64
	HasHighestModSeq bool
	MailboxID     string
	HasMailboxID  bool
}
