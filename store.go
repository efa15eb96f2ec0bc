package imap

// StoreAction specifies how a STORE command modifies a message's flags.
type StoreAction int

const (
	StoreFlagsSet StoreAction = iota
	StoreFlagsAdd
	StoreFlagsDel
)

// String returns the wire token for the action ("FLAGS", "+FLAGS", "-FLAGS").
func (a StoreAction) String() string {
	switch a {
	case StoreFlagsAdd:
		return "+FLAGS"
	case StoreFlagsDel:
		return "-FLAGS"
	default:
		return "FLAGS"
	}
}

// StoreFlags is the flag-change argument of a STORE command.
type StoreFlags struct {
	Action StoreAction
	Silent bool
	Flags  []Flag
}

// StoreModifier is a STORE command modifier.
type StoreModifier interface {
	isStoreModifier()
}

// StoreModifierUnchangedSince is the UNCHANGEDSINCE modifier (CONDSTORE).
type StoreModifierUnchangedSince struct{ ModSeq uint64 }

func (StoreModifierUnchangedSince) isStoreModifier() {}
