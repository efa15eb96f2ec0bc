package imap

import "testing"

func mustText(t *testing.T, s string) Text {
	t.Helper()
	tx, err := NewText(s)
	if err != nil {
		t.Fatalf("NewText(%q): %v", s, err)
	}
	return tx
}

func TestStatusResponse_Error(t *testing.T) {
	tests := []struct {
		name string
		resp StatusResponse
		want string
	}{
		{
			"OK only",
			StatusResponse{Kind: StatusOK},
			"OK",
		},
		{
			"OK with text",
			StatusResponse{Kind: StatusOK, Text: mustText(t, "Login completed")},
			"OK Login completed",
		},
		{
			"NO with text",
			StatusResponse{Kind: StatusNo, Text: mustText(t, "Mailbox not found")},
			"NO Mailbox not found",
		},
		{
			"BAD with text",
			StatusResponse{Kind: StatusBad, Text: mustText(t, "Command unknown")},
			"BAD Command unknown",
		},
		{
			"BYE with text",
			StatusResponse{Kind: StatusBye, Text: mustText(t, "Server shutting down")},
			"BYE Server shutting down",
		},
		{
			"OK with code",
			StatusResponse{Kind: StatusOK, Code: CodeCapability, Text: mustText(t, "done")},
			"OK [CAPABILITY] done",
		},
		{
			"NO with code",
			StatusResponse{Kind: StatusNo, Code: CodeTryCreate, Text: mustText(t, "Mailbox does not exist")},
			"NO [TRYCREATE] Mailbox does not exist",
		},
		{
			"code no text",
			StatusResponse{Kind: StatusOK, Code: CodeReadOnly},
			"OK [READ-ONLY]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Error(); got != tt.want {
				t.Errorf("StatusResponse.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrNo(t *testing.T) {
	err := ErrNo("mailbox not found")
	want := "NO mailbox not found"
	if got := err.Error(); got != want {
		t.Errorf("ErrNo.Error() = %q, want %q", got, want)
	}
	if err.Kind != StatusNo {
		t.Errorf("Kind = %q, want %q", err.Kind, StatusNo)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
}

func TestErrBad(t *testing.T) {
	err := ErrBad("syntax error")
	want := "BAD syntax error"
	if got := err.Error(); got != want {
		t.Errorf("ErrBad.Error() = %q, want %q", got, want)
	}
	if err.Kind != StatusBad {
		t.Errorf("Kind = %q, want %q", err.Kind, StatusBad)
	}
}

func TestErrBye(t *testing.T) {
	err := ErrBye("server shutting down")
	want := "BYE server shutting down"
	if got := err.Error(); got != want {
		t.Errorf("ErrBye.Error() = %q, want %q", got, want)
	}
	if err.Kind != StatusBye {
		t.Errorf("Kind = %q, want %q", err.Kind, StatusBye)
	}
}

func TestErrNo_EmptyText(t *testing.T) {
	if got := ErrNo("").Error(); got != "NO" {
		t.Errorf("ErrNo(\"\").Error() = %q, want %q", got, "NO")
	}
}

func TestStatusKind_Values(t *testing.T) {
	tests := []struct {
		kind StatusKind
		want string
	}{
		{StatusOK, "OK"},
		{StatusNo, "NO"},
		{StatusBad, "BAD"},
		{StatusBye, "BYE"},
		{StatusPreAuth, "PREAUTH"},
	}
	for _, tt := range tests {
		if string(tt.kind) != tt.want {
			t.Errorf("StatusKind = %q, want %q", tt.kind, tt.want)
		}
	}
}

func TestCode_Values(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeAlert, "ALERT"},
		{CodeCapability, "CAPABILITY"},
		{CodeReadOnly, "READ-ONLY"},
		{CodeReadWrite, "READ-WRITE"},
		{CodeUIDNext, "UIDNEXT"},
		{CodeUIDValidity, "UIDVALIDITY"},
		{CodeAppendUID, "APPENDUID"},
		{CodeCopyUID, "COPYUID"},
		{CodeHighestModSeq, "HIGHESTMODSEQ"},
		{CodeClosed, "CLOSED"},
	}
	for _, tt := range tests {
		if string(tt.code) != tt.want {
			t.Errorf("Code = %q, want %q", tt.code, tt.want)
		}
	}
}

func TestResponse_DataDiscriminant(t *testing.T) {
	r := Response{
		Kind: ResponseData,
		Data: &Data{Kind: DataExists, Num: 5},
	}
	if r.Data.Kind != DataExists || r.Data.Num != 5 {
		t.Errorf("Data = %+v", r.Data)
	}
}
