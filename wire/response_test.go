package wire

import (
	"testing"

	"github.com/corvidmail/imapcodec"
)

func TestDecodeGreeting_OK(t *testing.T) {
	r := DecodeGreeting([]byte("* OK [CAPABILITY IMAP4rev1 IDLE] ready\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if r.Value.Kind != imap.GreetingOK {
		t.Errorf("kind = %v, want OK", r.Value.Kind)
	}
	if r.Value.Code != imap.CodeCapability {
		t.Errorf("code = %v, want CAPABILITY", r.Value.Code)
	}
	arg, ok := r.Value.CodeArg.(imap.CodeArgCapability)
	if !ok || len(arg.Caps) != 2 {
		t.Fatalf("codearg = %#v", r.Value.CodeArg)
	}
}

func TestDecodeGreeting_Bye(t *testing.T) {
	r := DecodeGreeting([]byte("* BYE shutting down\r\n"), Quirks{})
	if r.Status != StatusConsumed || r.Value.Kind != imap.GreetingBye {
		t.Fatalf("status=%v kind=%v reason=%q", r.Status, r.Value.Kind, r.Reason)
	}
}

func TestDecodeGreeting_Incomplete(t *testing.T) {
	r := DecodeGreeting([]byte("* OK read"), Quirks{})
	if r.Status != StatusIncomplete {
		t.Fatalf("status = %v, want Incomplete", r.Status)
	}
}

func TestDecodeResponse_TaggedOK(t *testing.T) {
	r := DecodeResponse([]byte("a1 OK LOGIN completed\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if r.Value.Kind != imap.ResponseStatus || r.Value.Status.Kind != imap.StatusOK {
		t.Fatalf("got %#v", r.Value)
	}
	if !r.Value.Status.Tagged || r.Value.Status.Tag.String() != "a1" {
		t.Errorf("tag = %q, tagged = %v", r.Value.Status.Tag.String(), r.Value.Status.Tagged)
	}
}

func TestDecodeResponse_UntaggedNo(t *testing.T) {
	r := DecodeResponse([]byte("* NO [ALERT] disk quota\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if r.Value.Status.Tagged {
		t.Errorf("expected untagged")
	}
	if r.Value.Status.Kind != imap.StatusNo {
		t.Errorf("kind = %v, want NO", r.Value.Status.Kind)
	}
}

func TestDecodeResponse_Continue(t *testing.T) {
	r := DecodeResponse([]byte("+ ready\r\n"), Quirks{})
	if r.Status != StatusConsumed || r.Value.Kind != imap.ResponseContinue {
		t.Fatalf("status=%v kind=%v reason=%q", r.Status, r.Value.Kind, r.Reason)
	}
}

func TestDecodeResponse_Exists(t *testing.T) {
	r := DecodeResponse([]byte("* 23 EXISTS\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if r.Value.Data.Kind != imap.DataExists || r.Value.Data.Num != 23 {
		t.Errorf("got %#v", r.Value.Data)
	}
}

func TestDecodeResponse_PermanentFlagsWildcard(t *testing.T) {
	r := DecodeResponse([]byte("a1 OK [PERMANENTFLAGS (\\Deleted \\Seen \\*)] done\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg, ok := r.Value.Status.CodeArg.(imap.CodeArgPermanentFlags)
	if !ok || len(arg.Flags) != 3 {
		t.Fatalf("got %#v", r.Value.Status.CodeArg)
	}
	if arg.Flags[2] != imap.Flag(`\*`) {
		t.Errorf("flags = %v, want last to be \\*", arg.Flags)
	}
}

func TestDecodeResponse_Flags(t *testing.T) {
	r := DecodeResponse([]byte("* FLAGS (\\Answered \\Flagged \\Deleted \\Seen \\Draft)\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if r.Value.Data.Kind != imap.DataFlags || len(r.Value.Data.Flags) != 5 {
		t.Fatalf("got %#v", r.Value.Data)
	}
}

func TestDecodeResponse_IDData(t *testing.T) {
	r := DecodeResponse([]byte(`* ID ("name" "server" "version" "1.0")` + "\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if r.Value.Data.Kind != imap.DataID || len(r.Value.Data.ID.Fields) != 2 {
		t.Fatalf("got %#v", r.Value.Data)
	}
}

func TestEncodeStatusResponse_RoundTrip(t *testing.T) {
	tag, _ := imap.NewTag("a1")
	text, _ := imap.NewText("completed")
	sr := imap.StatusResponse{Tagged: true, Tag: tag, Kind: imap.StatusOK, Text: text}
	encoded := Dump(EncodeStatusResponse(sr))
	r := DecodeResponse(encoded, Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q, encoded = %q", r.Status, r.Reason, encoded)
	}
	if r.Value.Status.Kind != imap.StatusOK || r.Value.Status.Text.String() != "completed" {
		t.Errorf("mismatch: %#v", r.Value.Status)
	}
}

func TestDecodeAuthenticateData(t *testing.T) {
	r := DecodeAuthenticateData([]byte("dGVzdA==\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if string(r.Value.Base64) != "test" {
		t.Errorf("base64 = %q, want %q", r.Value.Base64, "test")
	}
}

func TestDecodeAuthenticateData_Cancel(t *testing.T) {
	r := DecodeAuthenticateData([]byte("*\r\n"), Quirks{})
	if r.Status != StatusConsumed || !r.Value.Cancel {
		t.Fatalf("status=%v cancel=%v reason=%q", r.Status, r.Value.Cancel, r.Reason)
	}
}

func TestDecodeIdleDone(t *testing.T) {
	r := DecodeIdleDone([]byte("DONE\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
}
