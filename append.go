package imap

// AppendOptions are the optional arguments to an APPEND command: flags and
// an internal date to stamp the new message with.
type AppendOptions struct {
	Flags           []Flag
	InternalDate    InternalDate
	HasInternalDate bool
}

// AppendData is the result of an APPEND command under UIDPLUS (RFC 4315).
type AppendData struct {
	UIDValidity uint32
	UID         UID
}
