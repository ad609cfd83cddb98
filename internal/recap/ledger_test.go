package recap

import "testing"

// TestLedger_MarkAndCheck verifies the basic sent/not-sent round trip.
func TestLedger_MarkAndCheck(t *testing.T) {
	l, err := OpenLedger(t.TempDir())
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer l.Close()

	sent, err := l.WasSent(1, "2026-08-17")
	if err != nil {
		t.Fatalf("WasSent: %v", err)
	}
	if sent {
		t.Error("fresh ledger reports sent=true")
	}

	if err := l.MarkSent(1, "2026-08-17"); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}

	sent, err = l.WasSent(1, "2026-08-17")
	if err != nil {
		t.Fatalf("WasSent: %v", err)
	}
	if !sent {
		t.Error("marked recap reports sent=false")
	}

	// Other users and weeks are unaffected.
	if sent, _ := l.WasSent(2, "2026-08-17"); sent {
		t.Error("user 2 reports sent=true")
	}
	if sent, _ := l.WasSent(1, "2026-08-24"); sent {
		t.Error("other week reports sent=true")
	}
}

// TestLedger_MarkSentIdempotent verifies that double-marking does not error.
func TestLedger_MarkSentIdempotent(t *testing.T) {
	l, err := OpenLedger(t.TempDir())
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer l.Close()

	if err := l.MarkSent(7, "2026-08-17"); err != nil {
		t.Fatalf("first MarkSent: %v", err)
	}
	if err := l.MarkSent(7, "2026-08-17"); err != nil {
		t.Fatalf("second MarkSent: %v", err)
	}
}
