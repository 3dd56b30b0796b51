package interactive

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/tmc/overlay"
)

func newTestReadline(t *testing.T, showEvents bool) (*ReadlineSession, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s, err := NewReadlineSession(Config{
		Stdout:     &out,
		Stderr:     &out,
		Logger:     zaptest.NewLogger(t).Sugar(),
		ShowEvents: showEvents,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s, &out
}

func handle(t *testing.T, s *ReadlineSession, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if err := s.HandleLine(l); err != nil {
			t.Fatalf("HandleLine(%q): %v", l, err)
		}
	}
}

func TestReadlineSession_DialogMenu(t *testing.T) {
	s, out := newTestReadline(t, false)

	handle(t, s, "spin Loading")
	if !strings.Contains(out.String(), "… Loading\n") {
		t.Errorf("spinner line missing:\n%s", out)
	}

	out.Reset()
	handle(t, s, "ask Sure?\nReally?")
	want := "┌ Message\n│ Sure?\n│ Really?\n│  1) OK\n│  2) Cancel\n└\n"
	if got := out.String(); got != want {
		t.Errorf("dialog output = %q, want %q", got, want)
	}
	if got := s.Coordinator().State(); got != overlay.DialogActive {
		t.Fatalf("State() = %v, want dialog", got)
	}

	out.Reset()
	handle(t, s, "7")
	if got := out.String(); got != "choose 1-2\n" {
		t.Errorf("invalid answer output = %q", got)
	}

	out.Reset()
	handle(t, s, "2")
	if got := out.String(); got != "cancelled\n" {
		t.Errorf("answer output = %q, want cancelled", got)
	}
	if got := s.Coordinator().State(); got != overlay.Idle {
		t.Errorf("State() = %v, want idle", got)
	}
}

func TestReadlineSession_ParkedSpinner(t *testing.T) {
	s, out := newTestReadline(t, false)
	handle(t, s, "unsaved")
	if err := s.shell.Execute("spin Syncing"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "Syncing") {
		t.Fatalf("parked spinner was printed:\n%s", out)
	}
	out.Reset()
	handle(t, s, "1")
	if got := out.String(); got != "saved\n… Syncing\n" {
		t.Errorf("output = %q, want saved then the resumed spinner", got)
	}
}

func TestReadlineSession_Toast(t *testing.T) {
	s, out := newTestReadline(t, false)
	handle(t, s, "toast Hi", "spin Busy", "toast Dropped")
	got := out.String()
	if !strings.Contains(got, "» Hi\n") {
		t.Errorf("toast missing:\n%s", got)
	}
	if strings.Contains(got, "Dropped") {
		t.Errorf("toast printed while busy:\n%s", got)
	}
}

func TestReadlineSession_Events(t *testing.T) {
	s, out := newTestReadline(t, true)
	handle(t, s, "toast Hi")
	if got := out.String(); got != "» Hi\n· toast-presented \"Hi\"\n" {
		t.Errorf("output = %q", got)
	}
}

func TestReadlineSession_Quit(t *testing.T) {
	s, _ := newTestReadline(t, false)
	handle(t, s, "quit")
	if !s.quitting {
		t.Errorf("quit command did not mark the session")
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct{ in, want string }{
		{"", ""},
		{"/tmp/h", "/tmp/h"},
		{"~", home},
		{"~/h", filepath.Join(home, "h")},
		{"~bob/h", "~bob/h"},
	}
	for _, tt := range tests {
		got, err := expandTilde(tt.in)
		if err != nil {
			t.Fatalf("expandTilde(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("expandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
