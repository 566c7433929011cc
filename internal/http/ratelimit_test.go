package api

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestVisitorTableLimitsPerKey(t *testing.T) {
	tbl := newVisitorTable(rate.Every(time.Hour), 2, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tbl.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if !tbl.allow("10.0.0.1") {
			t.Fatalf("request %d should be within burst", i)
		}
	}
	if tbl.allow("10.0.0.1") {
		t.Fatal("expected third request to be limited")
	}
	if !tbl.allow("10.0.0.2") {
		t.Fatal("other address must have its own budget")
	}
}

func TestVisitorTableEvictsIdleEntries(t *testing.T) {
	tbl := newVisitorTable(rate.Every(time.Hour), 1, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tbl.now = func() time.Time { return now }

	tbl.allow("a")
	tbl.allow("b")
	if got := tbl.size(); got != 2 {
		t.Fatalf("expected 2 visitors, got %d", got)
	}

	now = now.Add(2 * time.Minute)
	if !tbl.allow("c") {
		t.Fatal("new visitor should be allowed")
	}
	if got := tbl.size(); got != 1 {
		t.Fatalf("expected idle visitors evicted, got %d", got)
	}
}

func TestRemoteHost(t *testing.T) {
	cases := map[string]string{
		"127.0.0.1:5555": "127.0.0.1",
		"[::1]:80":       "::1",
		"10.1.2.3":       "10.1.2.3",
	}
	for in, want := range cases {
		if got := remoteHost(in); got != want {
			t.Fatalf("remoteHost(%q) = %q, want %q", in, got, want)
		}
	}
}
