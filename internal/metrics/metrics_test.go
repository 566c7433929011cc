package metrics

import "testing"

func TestSetLedgerStateNeverGoesBackwards(t *testing.T) {
	Register()

	if !SetLedgerState(10, 4) {
		t.Fatalf("first report must apply")
	}
	if SetLedgerState(8, 3) {
		t.Fatalf("older version must be ignored")
	}
	if SetLedgerState(10, 4) {
		t.Fatalf("repeated version must be ignored")
	}
	if got := LedgerVersion(); got != 10 {
		t.Fatalf("expected version 10, got %d", got)
	}
	if !SetLedgerState(11, 5) || LedgerVersion() != 11 {
		t.Fatalf("newer version must apply, got %d", LedgerVersion())
	}
}
