package imap

// QResyncParam is the QRESYNC parameter of SELECT/EXAMINE (RFC 7162).
type QResyncParam struct {
	UIDValidity uint32
	ModSeq      uint64
	KnownUIDs   *UIDSet
	HasKnownUIDs bool
	SeqMatch    *QResyncSeqMatch
}

// QResyncSeqMatch is the optional known-sequence-match-data of QRESYNC:
// parallel sequence-number and UID sets describing a previously known
// mapping the server can use to reconcile VANISHED responses.
type QResyncSeqMatch struct {
	SeqNums *SeqSet
	UIDs    *UIDSet
}

// SelectModifier is a SELECT/EXAMINE command modifier.
type SelectModifier interface {
	isSelectModifier()
}

// SelectModifierCondStore enables CONDSTORE reporting for the session.
type SelectModifierCondStore struct{}

func (SelectModifierCondStore) isSelectModifier() {}

// SelectModifierQResync carries the QRESYNC parameter.
type SelectModifierQResync struct{ Param QResyncParam }

func (SelectModifierQResync) isSelectModifier() {}

// SelectData is the set of untagged responses a SELECT/EXAMINE produces,
// gathered into one value for convenience; on the wire each field still
// arrives as its own Data item.
type SelectData struct {
	Flags          []Flag
	PermanentFlags []Flag
	NumMessages    uint32
	NumRecent      uint32
	HasNumRecent   bool
	UIDNext        UID
	HasUIDNext     bool
	UIDValidity    uint32
	HasUIDValidity bool
	FirstUnseen    uint32
	HasFirstUnseen bool
	HighestModSeq  uint64
	HasHighestModSeq bool
	NoModSeq       bool
	ReadOnly       bool
	MailboxID      string
	HasMailboxID   bool
}
