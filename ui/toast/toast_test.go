package toast

import (
	"strings"
	"testing"
	"time"

	"github.com/tmc/overlay"
)

func TestPushAndExpire(t *testing.T) {
	var m Model
	m, cmd := m.Push(overlay.Toast{Message: "Saved", Duration: time.Millisecond, Position: overlay.ToastTop})
	if cmd == nil {
		t.Fatal("Push returned nil cmd")
	}
	m, _ = m.Push(overlay.Toast{Message: "Synced", Duration: time.Hour})
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}

	msg := cmd()
	exp, ok := msg.(ExpiredMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want ExpiredMsg", msg)
	}
	m, _ = m.Update(exp)
	if m.Len() != 1 {
		t.Fatalf("Len() after expiry = %d, want 1", m.Len())
	}
	if v := m.View(40); strings.Contains(v, "Saved") || !strings.Contains(v, "Synced") {
		t.Errorf("View() = %q, want only Synced", v)
	}
}

func TestMax(t *testing.T) {
	m := Model{Max: 2}
	for _, s := range []string{"a", "b", "c"} {
		m, _ = m.Push(overlay.Toast{Message: s, Duration: time.Hour})
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	if v := m.View(20); strings.Contains(v, " a ") {
		t.Errorf("oldest toast still visible: %q", v)
	}
}

func TestViewAlignment(t *testing.T) {
	var m Model
	m, _ = m.Push(overlay.Toast{Message: "hi", StyleClass: "rtl", Duration: time.Hour})
	v := m.View(30)
	if !strings.HasPrefix(v, strings.Repeat(" ", 20)) {
		t.Errorf("rtl toast not right aligned: %q", v)
	}
	if got := (Model{}).View(30); got != "" {
		t.Errorf("empty View() = %q", got)
	}
}
