package imap

import (
	"testing"
	"time"
)

func TestFlag_Values(t *testing.T) {
	tests := []struct {
		flag Flag
		want string
	}{
		{FlagSeen, "\\Seen"},
		{FlagAnswered, "\\Answered"},
		{FlagFlagged, "\\Flagged"},
		{FlagDeleted, "\\Deleted"},
		{FlagDraft, "\\Draft"},
		{FlagRecent, "\\Recent"},
		{FlagWildcard, "\\*"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if string(tt.flag) != tt.want {
				t.Errorf("Flag = %q, want %q", tt.flag, tt.want)
			}
		})
	}
}

func TestNewFlag(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"system flag", "\\Seen", false},
		{"keyword", "$Important", false},
		{"bare atom", "Custom", false},
		{"empty backslash body", "\\", true},
		{"contains space", "foo bar", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFlag(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFlag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && string(f) != tt.in {
				t.Errorf("NewFlag(%q) = %q", tt.in, f)
			}
		})
	}
}

func TestFlag_IsSystem(t *testing.T) {
	if !FlagSeen.IsSystem() {
		t.Error("FlagSeen should be a system flag")
	}
	custom := Flag("$Important")
	if custom.IsSystem() {
		t.Error("keyword flag should not be a system flag")
	}
}

func TestMailboxAttr_Values(t *testing.T) {
	tests := []struct {
		attr MailboxAttr
		want string
	}{
		{MailboxAttrNoInferiors, "\\Noinferiors"},
		{MailboxAttrNoSelect, "\\Noselect"},
		{MailboxAttrMarked, "\\Marked"},
		{MailboxAttrUnmarked, "\\Unmarked"},
		{MailboxAttrHasChildren, "\\HasChildren"},
		{MailboxAttrHasNoChildren, "\\HasNoChildren"},
		{MailboxAttrNonExistent, "\\NonExistent"},
		{MailboxAttrSubscribed, "\\Subscribed"},
		{MailboxAttrRemote, "\\Remote"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if string(tt.attr) != tt.want {
				t.Errorf("MailboxAttr = %q, want %q", tt.attr, tt.want)
			}
		})
	}
}

func TestAddress_String(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{
			"full address with name",
			Address{Name: "John Doe", Mailbox: "john", Host: "example.com"},
			"John Doe <john@example.com>",
		},
		{
			"address without name",
			Address{Mailbox: "john", Host: "example.com"},
			"john@example.com",
		},
		{
			"group marker",
			Address{Mailbox: "undisclosed-recipients"},
			"undisclosed-recipients",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.addr.String()
			if got != tt.want {
				t.Errorf("Address.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBodyStructure_IsMultipart(t *testing.T) {
	tests := []struct {
		name string
		bs   BodyStructure
		want bool
	}{
		{"multipart lower", BodyStructure{Type: "multipart", Subtype: "mixed"}, true},
		{"multipart upper", BodyStructure{Type: "MULTIPART", Subtype: "mixed"}, true},
		{"text plain", BodyStructure{Type: "text", Subtype: "plain"}, false},
		{"message rfc822", BodyStructure{Type: "message", Subtype: "rfc822"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bs.IsMultipart(); got != tt.want {
				t.Errorf("IsMultipart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBodyStructure_Depth(t *testing.T) {
	leaf := BodyStructure{Type: "text", Subtype: "plain"}
	if d := leaf.Depth(); d != 1 {
		t.Errorf("leaf Depth() = %d, want 1", d)
	}

	nested := BodyStructure{
		Type:    "multipart",
		Subtype: "mixed",
		Children: []BodyStructure{
			leaf,
			{
				Type:    "multipart",
				Subtype: "alternative",
				Children: []BodyStructure{leaf, leaf},
			},
		},
	}
	if d := nested.Depth(); d != 3 {
		t.Errorf("nested Depth() = %d, want 3", d)
	}
}

func TestInternalDate_RoundTrip(t *testing.T) {
	original := "15-Oct-2023 14:30:00 +0000"
	parsed, err := time.Parse(InternalDateLayout, original)
	if err != nil {
		t.Fatalf("time.Parse error: %v", err)
	}
	d, err := NewInternalDate(parsed)
	if err != nil {
		t.Fatalf("NewInternalDate error: %v", err)
	}
	if got := d.String(); got != original {
		t.Errorf("round-trip: got %q, want %q", got, original)
	}
}

func TestNewInternalDate_RejectsOutOfRangeOffset(t *testing.T) {
	t1 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.FixedZone("weird", 1440*60))
	if _, err := NewInternalDate(t1); err == nil {
		t.Error("expected error for offset beyond 1439 minutes")
	}
}

func TestEnvelope_Fields(t *testing.T) {
	env := &Envelope{
		Date:    time.Date(2023, 10, 15, 14, 30, 0, 0, time.UTC),
		HasDate: true,
		Subject: "Test Subject",
		From:    []Address{{Name: "Sender", Mailbox: "sender", Host: "example.com"}},
		To:      []Address{{Name: "Recipient", Mailbox: "rcpt", Host: "example.com"}},
	}
	if env.Subject != "Test Subject" {
		t.Errorf("Subject = %q", env.Subject)
	}
	if len(env.From) != 1 || env.From[0].String() != "Sender <sender@example.com>" {
		t.Errorf("From = %v", env.From)
	}
}

func TestUID_SeqNum_Types(t *testing.T) {
	var uid UID = 12345
	if uint32(uid) != 12345 {
		t.Errorf("UID = %d, want 12345", uid)
	}
	var seq SeqNum = 42
	if uint32(seq) != 42 {
		t.Errorf("SeqNum = %d, want 42", seq)
	}
}
