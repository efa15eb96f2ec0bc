package wire

import (
	"testing"

	"github.com/corvidmail/imapcodec"
)

func TestDecodeCommand_NoArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind imap.CommandKind
	}{
		{"capability", "a1 CAPABILITY\r\n", imap.CommandCapability},
		{"noop", "a1 NOOP\r\n", imap.CommandNoop},
		{"logout", "a1 LOGOUT\r\n", imap.CommandLogout},
		{"idle", "a1 IDLE\r\n", imap.CommandIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DecodeCommand([]byte(tt.in), Quirks{})
			if r.Status != StatusConsumed {
				t.Fatalf("status = %v, want Consumed (reason %q)", r.Status, r.Reason)
			}
			if r.Value.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", r.Value.Kind, tt.kind)
			}
			if r.Value.Tag.String() != "a1" {
				t.Errorf("tag = %q, want a1", r.Value.Tag.String())
			}
			if len(r.Rest) != 0 {
				t.Errorf("rest = %q, want empty", r.Rest)
			}
		})
	}
}

func TestDecodeCommand_Login(t *testing.T) {
	r := DecodeCommand([]byte("a1 LOGIN bob secret\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg, ok := r.Value.Arg.(imap.CommandArgLogin)
	if !ok {
		t.Fatalf("arg type = %T, want CommandArgLogin", r.Value.Arg)
	}
	if imap.AStringText(arg.Username) != "bob" || imap.AStringText(arg.Password) != "secret" {
		t.Errorf("got user=%q pass=%q", imap.AStringText(arg.Username), imap.AStringText(arg.Password))
	}
}

func TestDecodeCommand_UIDPrefix(t *testing.T) {
	r := DecodeCommand([]byte("a1 UID FETCH 1:* FLAGS\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	if !r.Value.UID {
		t.Errorf("expected UID flag set")
	}
	if r.Value.Kind != imap.CommandFetch {
		t.Errorf("kind = %v, want FETCH", r.Value.Kind)
	}
}

func TestDecodeCommand_Select(t *testing.T) {
	r := DecodeCommand([]byte("a1 SELECT INBOX\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgSelect)
	if !arg.Mailbox.IsInbox() {
		t.Errorf("expected INBOX")
	}
}

func TestDecodeCommand_SelectCondstore(t *testing.T) {
	r := DecodeCommand([]byte("a1 SELECT INBOX (CONDSTORE)\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgSelect)
	if len(arg.Modifiers) != 1 {
		t.Fatalf("modifiers = %v, want 1", arg.Modifiers)
	}
	if _, ok := arg.Modifiers[0].(imap.SelectModifierCondStore); !ok {
		t.Errorf("modifier type = %T, want SelectModifierCondStore", arg.Modifiers[0])
	}
}

func TestDecodeCommand_Store(t *testing.T) {
	r := DecodeCommand([]byte("a1 STORE 1:5 +FLAGS.SILENT (\\Deleted)\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgStore)
	if arg.Flags.Action != imap.StoreFlagsAdd || !arg.Flags.Silent {
		t.Errorf("got action=%v silent=%v", arg.Flags.Action, arg.Flags.Silent)
	}
	if len(arg.Flags.Flags) != 1 || arg.Flags.Flags[0] != imap.Flag(`\Deleted`) {
		t.Errorf("flags = %v", arg.Flags.Flags)
	}
}

func TestDecodeCommand_Search(t *testing.T) {
	r := DecodeCommand([]byte("a1 SEARCH UNSEEN FROM bob\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgSearch)
	and, ok := arg.Key.(imap.SearchKeyAnd)
	if !ok || len(and.Children) != 2 {
		t.Fatalf("key = %#v, want 2-child And", arg.Key)
	}
	if _, ok := and.Children[0].(imap.SearchKeyNot); !ok {
		t.Errorf("first child = %T, want SearchKeyNot (UNSEEN)", and.Children[0])
	}
	hf, ok := and.Children[1].(imap.SearchKeyHeaderField)
	if !ok || hf.Field != "FROM" || hf.Value != "bob" {
		t.Errorf("second child = %#v, want FROM bob", and.Children[1])
	}
}

func TestDecodeCommand_FetchBodySection(t *testing.T) {
	r := DecodeCommand([]byte("a1 FETCH 1 BODY.PEEK[1.TEXT]\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgFetch)
	if len(arg.Items) != 1 {
		t.Fatalf("items = %v", arg.Items)
	}
	sec, ok := arg.Items[0].(*imap.FetchItemBodySection)
	if !ok {
		t.Fatalf("item type = %T", arg.Items[0])
	}
	if !sec.Peek || len(sec.Specifier.Part) != 1 || sec.Specifier.Part[0] != 1 || sec.Specifier.Text != "TEXT" {
		t.Errorf("got %#v", sec)
	}
}

func TestDecodeCommand_FetchHeaderFields(t *testing.T) {
	r := DecodeCommand([]byte("a1 FETCH 1 BODY[HEADER.FIELDS (DATE FROM)]\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgFetch)
	sec, ok := arg.Items[0].(*imap.FetchItemBodySection)
	if !ok {
		t.Fatalf("item type = %T", arg.Items[0])
	}
	if sec.Specifier.Text != "HEADER.FIELDS" || sec.Specifier.NotFields {
		t.Errorf("got text=%q notFields=%v", sec.Specifier.Text, sec.Specifier.NotFields)
	}
	if len(sec.Specifier.Fields) != 2 || sec.Specifier.Fields[0] != "DATE" || sec.Specifier.Fields[1] != "FROM" {
		t.Errorf("fields = %v", sec.Specifier.Fields)
	}

	encoded := Dump(EncodeCommand(r.Value))
	if string(encoded) != "a1 FETCH 1 BODY[HEADER.FIELDS (DATE FROM)]\r\n" {
		t.Errorf("round trip mismatch: %q", encoded)
	}
}

func TestDecodeCommand_FetchHeaderFieldsNot(t *testing.T) {
	r := DecodeCommand([]byte("a1 FETCH 1 BODY.PEEK[HEADER.FIELDS.NOT (RECEIVED)]\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgFetch)
	sec := arg.Items[0].(*imap.FetchItemBodySection)
	if !sec.Specifier.NotFields || sec.Specifier.Text != "HEADER.FIELDS.NOT" {
		t.Errorf("got %#v", sec.Specifier)
	}
	if len(sec.Specifier.Fields) != 1 || sec.Specifier.Fields[0] != "RECEIVED" {
		t.Errorf("fields = %v", sec.Specifier.Fields)
	}
}

func TestDecodeCommand_Append(t *testing.T) {
	r := DecodeCommand([]byte("a1 APPEND INBOX (\\Seen) {5}\r\nhello\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgAppend)
	if len(arg.Options.Flags) != 1 || arg.Options.Flags[0] != imap.FlagSeen {
		t.Errorf("flags = %v", arg.Options.Flags)
	}
	if string(arg.Literal.Bytes()) != "hello" {
		t.Errorf("literal = %q", arg.Literal.Bytes())
	}
}

func TestDecodeCommand_AppendLiteralFound(t *testing.T) {
	r := DecodeCommand([]byte("a1 APPEND INBOX {5}\r\nhel"), Quirks{})
	if r.Status != StatusLiteralFound {
		t.Fatalf("status = %v, want LiteralFound", r.Status)
	}
}

func TestDecodeCommand_Incomplete(t *testing.T) {
	r := DecodeCommand([]byte("a1 LOG"), Quirks{})
	if r.Status != StatusIncomplete {
		t.Fatalf("status = %v, want Incomplete", r.Status)
	}
}

func TestDecodeCommand_ID(t *testing.T) {
	r := DecodeCommand([]byte(`a1 ID ("name" "imaptest")` + "\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgID)
	if !arg.HasParams || len(arg.Params.Fields) != 1 {
		t.Fatalf("got %#v", arg)
	}
	v, ok := arg.Params.Get("name")
	if !ok || imap.IsNil(v) {
		t.Fatalf("expected name field, got %v", v)
	}
}

func TestDecodeCommand_IDNil(t *testing.T) {
	r := DecodeCommand([]byte("a1 ID NIL\r\n"), Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q", r.Status, r.Reason)
	}
	arg := r.Value.Arg.(imap.CommandArgID)
	if arg.HasParams {
		t.Errorf("expected no params for ID NIL")
	}
}

func TestEncodeCommand_RoundTrip(t *testing.T) {
	tag, err := imap.NewTag("a1")
	if err != nil {
		t.Fatal(err)
	}
	cmd := imap.Command{Tag: tag, Kind: imap.CommandLogin, Arg: imap.CommandArgLogin{
		Username: imap.NewAString("bob"),
		Password: imap.NewAString("secret"),
	}}
	frags := EncodeCommand(cmd)
	encoded := Dump(frags)

	r := DecodeCommand(encoded, Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("re-decode status = %v, reason %q, encoded = %q", r.Status, r.Reason, encoded)
	}
	arg := r.Value.Arg.(imap.CommandArgLogin)
	if imap.AStringText(arg.Username) != "bob" || imap.AStringText(arg.Password) != "secret" {
		t.Errorf("round trip mismatch: %q", encoded)
	}
}

func TestEncodeCommand_StoreRoundTrip(t *testing.T) {
	tag, _ := imap.NewTag("a2")
	set, err := imap.ParseSeqSet("1:5")
	if err != nil {
		t.Fatal(err)
	}
	cmd := imap.Command{Tag: tag, Kind: imap.CommandStore, Arg: imap.CommandArgStore{
		Seqs:  set,
		Flags: imap.StoreFlags{Action: imap.StoreFlagsAdd, Silent: true, Flags: []imap.Flag{imap.FlagDeleted}},
	}}
	encoded := Dump(EncodeCommand(cmd))
	r := DecodeCommand(encoded, Quirks{})
	if r.Status != StatusConsumed {
		t.Fatalf("status = %v, reason %q, encoded = %q", r.Status, r.Reason, encoded)
	}
	arg := r.Value.Arg.(imap.CommandArgStore)
	if arg.Flags.Action != imap.StoreFlagsAdd || !arg.Flags.Silent || len(arg.Flags.Flags) != 1 {
		t.Errorf("mismatch: %#v", arg.Flags)
	}
}
