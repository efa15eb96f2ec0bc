package wire

// Quirks is a set of opt-in decoder relaxations for real-world peers that
// deviate from RFC 3501's formal syntax in harmless, well-known ways. The
// zero value is strict RFC behaviour; every field defaults to off so a
// caller must name the exact deviations it wants tolerated.
//
// The decoders in this package read only CRLFRelaxed, MissingText and
// EmptyContinueReq. The other fields name further deviations, but no
// decoder reads them: setting them does not change what is accepted.
type Quirks struct {
	// CRLFRelaxed accepts a bare LF wherever CRLF is required.
	CRLFRelaxed bool

	// RectifyNumbers names clamping an out-of-range or malformed numeric
	// token to the nearest valid value. No decoder reads it.
	RectifyNumbers bool

	// MissingText tolerates a status response with no trailing text after
	// its response code, filling in an empty Text instead of failing.
	MissingText bool

	// IDEmptyToNil names treating `ID ()` (an empty, rather than NIL,
	// parameter list) the same as `ID NIL`. No decoder reads it.
	IDEmptyToNil bool

	// TrailingSpaceStatus names tolerating a trailing SP before the CRLF
	// that ends a STATUS response's parenthesised item list. No decoder
	// reads it.
	TrailingSpaceStatus bool
	// TrailingSpaceCapability names tolerating a trailing SP in a
	// CAPABILITY response's capability list. No decoder reads it.
	TrailingSpaceCapability bool
	// TrailingSpaceID names tolerating a trailing SP in an ID field list.
	// No decoder reads it.
	TrailingSpaceID bool
	// TrailingSpaceSearch names tolerating a trailing SP in a SEARCH
	// response's number list. No decoder reads it.
	TrailingSpaceSearch bool

	// SpacesBetweenAddresses names tolerating extra SP between envelope
	// address structures in an ADDRESS list. No decoder reads it.
	SpacesBetweenAddresses bool

	// EmptyContinueReq tolerates a continuation request line of just "+"
	// with no following SP before CRLF.
	EmptyContinueReq bool

	// BodyFldEncNilToEmpty names treating a NIL body-fld-enc (transfer
	// encoding) as the empty string. No decoder reads it.
	BodyFldEncNilToEmpty bool

	// ExcessiveSpaceQuotaResource names tolerating repeated SP between
	// the fields of a QUOTA resource triple. No decoder reads it.
	ExcessiveSpaceQuotaResource bool
}
