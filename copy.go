package imap

// CopyData is the result of a COPY or MOVE command with UIDPLUS (RFC 4315):
// the destination's UIDVALIDITY and the paired source/destination UID sets.
type CopyData struct {
	UIDValidity uint32
	SourceUIDs  UIDSet
	DestUIDs    UIDSet
}
