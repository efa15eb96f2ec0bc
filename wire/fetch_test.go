package wire

import (
	"testing"

	"github.com/corvidmail/imapcodec"
)

func TestDecodeResponse_FetchFlagsOnly(t *testing.T) {
	r := DecodeResponse([]byte("* 1 FETCH (FLAGS (\\Seen))\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if r.Value.Data.Kind != imap.DataFetch || r.Value.Data.FetchSeqNum != 1 {
		t.Fatalf("got %#v", r.Value.Data)
	}
	if len(r.Value.Data.FetchItems) != 1 {
		t.Fatalf("items = %#v", r.Value.Data.FetchItems)
	}
	item := r.Value.Data.FetchItems[0]
	if item.Kind != imap.FetchDataFlags || len(item.Flags) != 1 || item.Flags[0] != imap.FlagSeen {
		t.Fatalf("got %#v", item)
	}

	encoded := Dump(EncodeData(*r.Value.Data))
	want := "* 1 FETCH (FLAGS (\\Seen))\r\n"
	if string(encoded) != want {
		t.Errorf("re-encode = %q, want %q", encoded, want)
	}
}

// TestDecodeResponse_FetchEnvelopeBodystructureRoundTrip exercises the
// classic RFC 3501 §8 sample FETCH response: an ENVELOPE with a grouped
// reply-to/group-syntax address list, followed by a single-part
// text/plain BODY, and confirms byte-identical re-encoding.
func TestDecodeResponse_FetchEnvelopeBodystructureRoundTrip(t *testing.T) {
	line := "* 12 FETCH (FLAGS (\\Seen) INTERNALDATE \"17-Jul-1996 02:44:25 -0700\" " +
		"RFC822.SIZE 4286 ENVELOPE (\"Wed, 17 Jul 1996 02:23:25 -0700 (PDT)\" " +
		"\"IMAP4rev1 WG mtg summary and minutes\" " +
		"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) " +
		"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) " +
		"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) " +
		"((NIL NIL \"imap\" \"cac.washington.edu\")) " +
		"((NIL NIL \"minutes\" \"CNRI.Reston.VA.US\")(\"John Klensin\" NIL \"KLENSIN\" \"MIT.EDU\")) NIL NIL " +
		"\"<B27397-0100000@cac.washington.edu>\") " +
		"BODY (\"TEXT\" \"PLAIN\" (\"CHARSET\" \"US-ASCII\") NIL NIL \"7BIT\" 3028 92))\r\n"

	r := DecodeResponse([]byte(line), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if r.Value.Data.Kind != imap.DataFetch || r.Value.Data.FetchSeqNum != 12 {
		t.Fatalf("got %#v", r.Value.Data)
	}
	if len(r.Value.Data.FetchItems) != 5 {
		t.Fatalf("items = %#v", r.Value.Data.FetchItems)
	}

	var env *imap.Envelope
	var bs *imap.BodyStructure
	for _, it := range r.Value.Data.FetchItems {
		switch it.Kind {
		case imap.FetchDataEnvelope:
			env = it.Envelope
		case imap.FetchDataBody:
			bs = it.BodyStructure
		}
	}
	if env == nil || bs == nil {
		t.Fatalf("missing envelope or body: env=%v bs=%v", env, bs)
	}
	if env.Subject != "IMAP4rev1 WG mtg summary and minutes" {
		t.Errorf("subject = %q", env.Subject)
	}
	if len(env.From) != 1 || env.From[0].Mailbox != "gray" || env.From[0].Host != "cac.washington.edu" {
		t.Errorf("from = %#v", env.From)
	}
	if len(env.To) != 1 || env.To[0].Mailbox != "imap" || env.To[0].Host != "cac.washington.edu" {
		t.Errorf("to = %#v", env.To)
	}
	if len(env.Cc) != 2 || env.Cc[0].Mailbox != "minutes" || env.Cc[1].Name != "John Klensin" {
		t.Errorf("cc = %#v", env.Cc)
	}
	if len(env.Bcc) != 0 {
		t.Errorf("bcc = %#v, want none (NIL)", env.Bcc)
	}
	if env.MessageID != "<B27397-0100000@cac.washington.edu>" {
		t.Errorf("message-id = %q", env.MessageID)
	}
	if bs.Type != "TEXT" || bs.Subtype != "PLAIN" || bs.Params["CHARSET"] != "US-ASCII" {
		t.Errorf("bodystructure = %#v", bs)
	}
	if !bs.HasLines || bs.Lines != 92 || bs.Size != 3028 {
		t.Errorf("bodystructure lines/size = %#v", bs)
	}
	if bs.Extended {
		t.Errorf("plain BODY must not carry extended fields")
	}

	encoded := Dump(EncodeData(*r.Value.Data))
	if string(encoded) != line {
		t.Errorf("re-encode mismatch:\n got  %q\n want %q", encoded, line)
	}
}

func TestDecodeResponse_FetchEmailThreadID(t *testing.T) {
	r := DecodeResponse([]byte(`* 3 FETCH (EMAILID ("M0123456789abcdef") THREADID NIL)`+"\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	items := r.Value.Data.FetchItems
	if len(items) != 2 || items[0].EmailID != "M0123456789abcdef" || items[1].ThreadID != "" {
		t.Fatalf("got %#v", items)
	}

	encoded := Dump(EncodeData(*r.Value.Data))
	want := `* 3 FETCH (EMAILID ("M0123456789abcdef") THREADID NIL)` + "\r\n"
	if string(encoded) != want {
		t.Errorf("re-encode = %q, want %q", encoded, want)
	}
}
