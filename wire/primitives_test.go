package wire

import (
	"testing"

	"github.com/corvidmail/imapcodec"
)

func TestDecodeAtom(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		status Status
	}{
		{"simple atom", "FETCH ", "FETCH", StatusConsumed},
		{"atom at end of buffer", "FETCH", "", StatusIncomplete},
		{"empty", "", "", StatusIncomplete},
		{"leading special fails", "(FETCH", "", StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := decodeAtom([]byte(tt.in))
			if r.Status != tt.status {
				t.Fatalf("status = %v, want %v", r.Status, tt.status)
			}
			if tt.status == StatusConsumed && r.Value.String() != tt.want {
				t.Errorf("value = %q, want %q", r.Value.String(), tt.want)
			}
		})
	}
}

func TestDecodeQuotedString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		status Status
	}{
		{"simple", `"hello"`, "hello", StatusConsumed},
		{"empty", `""`, "", StatusConsumed},
		{"escaped quote", `"a\"b"`, `a"b`, StatusConsumed},
		{"escaped backslash", `"a\\b"`, `a\b`, StatusConsumed},
		{"unterminated", `"hello`, "", StatusIncomplete},
		{"not quoted", `hello`, "", StatusFailed},
		{"bad escape", `"a\xb"`, "", StatusFailed},
		{"embedded CR", "\"a\rb\"", "", StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := decodeQuotedString([]byte(tt.in))
			if r.Status != tt.status {
				t.Fatalf("status = %v, want %v", r.Status, tt.status)
			}
			if tt.status == StatusConsumed && r.Value.String() != tt.want {
				t.Errorf("value = %q, want %q", r.Value.String(), tt.want)
			}
		})
	}
}

func TestDecodeLiteral(t *testing.T) {
	q := Quirks{}
	r := decodeLiteral([]byte("{5}\r\nhello\r\n"), q)
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, want Consumed", r.Status)
	}
	if string(r.Value.Bytes()) != "hello" {
		t.Errorf("value = %q, want %q", r.Value.Bytes(), "hello")
	}
	if string(r.Rest) != "\r\n" {
		t.Errorf("rest = %q, want %q", r.Rest, "\r\n")
	}

	r2 := decodeLiteral([]byte("{5}\r\nhel"), q)
	if r2.Status != StatusLiteralFound {
		t.Fatalf("status = %v, want LiteralFound", r2.Status)
	}
	if r2.Literal.Length != 5 {
		t.Errorf("header length = %d, want 5", r2.Literal.Length)
	}

	r3 := decodeLiteral([]byte("{5+}\r\nhello"), q)
	if r3.Status != StatusConsumed || r3.Value.Mode() != imap.LiteralNonSync {
		t.Fatalf("expected consumed non-sync literal, got status=%v mode=%v", r3.Status, r3.Value.Mode())
	}
}

func TestDecodeAString(t *testing.T) {
	q := Quirks{}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"atom", "FOO ", "FOO"},
		{"quoted", `"foo bar" `, "foo bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := decodeAString([]byte(tt.in), q)
			if r.Status != StatusConsumed {
				t.Fatalf("status = %v, want Consumed", r.Status)
			}
			if imap.AStringText(r.Value) != tt.want {
				t.Errorf("text = %q, want %q", imap.AStringText(r.Value), tt.want)
			}
		})
	}
}

func TestDecodeNString(t *testing.T) {
	q := Quirks{}
	r := decodeNString([]byte("NIL "), q)
	if r.Status != StatusConsumed || !imap.IsNil(r.Value) {
		t.Fatalf("expected Nil, got status=%v value=%v", r.Status, r.Value)
	}

	r2 := decodeNString([]byte(`"abc" `), q)
	if r2.Status != StatusConsumed || imap.IsNil(r2.Value) {
		t.Fatalf("expected non-nil, got status=%v", r2.Status)
	}

	r3 := decodeNString([]byte("NI"), q)
	if r3.Status != StatusIncomplete {
		t.Fatalf("status = %v, want Incomplete (could still become NIL)", r3.Status)
	}
}

func TestDecodeMailboxInbox(t *testing.T) {
	q := Quirks{}
	for _, s := range []string{"INBOX", "inbox", "Inbox"} {
		r := decodeMailbox([]byte(s+" "), q)
		if r.Status != StatusConsumed {
			t.Fatalf("status = %v, want Consumed", r.Status)
		}
		if !r.Value.IsInbox() {
			t.Errorf("%q: expected IsInbox", s)
		}
	}
}
