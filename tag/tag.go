// Package tag generates pseudo-random IMAP command tags.
//
// A client tag only needs to be distinct from any tag still awaiting a
// response on the same connection; it does not need to be sequential.
// Generator renders the low bits of a UUID as a short base-36 atom,
// giving tags that are unpredictable (useful when a test harness or
// proxy must not assume a numbering scheme) without requiring a
// process-wide counter.
package tag

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/corvidmail/imapcodec"
)

// Generator produces IMAP tags. The zero value is ready to use.
type Generator struct{}

// Next returns a fresh, validated Tag.
func (g Generator) Next() imap.Tag {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	low := uint64(id[15]) | uint64(id[14])<<8 | uint64(id[13])<<16 | uint64(id[12])<<24 |
		uint64(id[11])<<32 | uint64(id[10])<<40 | uint64(id[9])<<48 | uint64(id[8])<<56
	s := "A" + strconv.FormatUint(low, 36)
	t, err := imap.NewTag(s)
	if err != nil {
		// low is rendered in base36 from a uint64, and "A" is a valid
		// leading atom-char: this can only fail from a logic bug here.
		panic(err)
	}
	return t
}
