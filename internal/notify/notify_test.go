package notify

import (
	"testing"
	"time"
)

func newTestQueue(now *time.Time) *Queue {
	q := NewQueue(time.Second)
	q.now = func() time.Time { return *now }
	return q
}

func TestShowReplacesByID(t *testing.T) {
	now := time.Unix(100, 0)
	q := newTestQueue(&now)

	q.Show("contact", Info, "Sending your message...")
	q.Show("other", Error, "Failed to load services")
	q.Show("contact", Success, "Thank you!")

	got := q.Active()
	if len(got) != 2 {
		t.Fatalf("Active len = %d, want 2", len(got))
	}
	if got[1].ID != "contact" || got[1].Text != "Thank you!" || got[1].Level != Success {
		t.Fatalf("latest = %#v, want replaced contact toast", got[1])
	}
	latest, ok := q.Latest()
	if !ok || latest.Text != "Thank you!" {
		t.Fatalf("Latest = %#v, %v", latest, ok)
	}
}

func TestExpireAndCap(t *testing.T) {
	now := time.Unix(100, 0)
	q := newTestQueue(&now)

	for _, text := range []string{"a", "b", "c", "d"} {
		q.Show("", Info, text)
	}
	got := q.Active()
	if len(got) != maxToasts || got[0].Text != "b" {
		t.Fatalf("Active = %#v, want newest %d", got, maxToasts)
	}

	if q.Expire() {
		t.Fatalf("Expire removed fresh toasts")
	}
	now = now.Add(time.Second)
	if !q.Expire() {
		t.Fatalf("Expire kept stale toasts")
	}
	if _, ok := q.Latest(); ok {
		t.Fatalf("queue not empty after expiry")
	}
}

func TestDismiss(t *testing.T) {
	now := time.Unix(0, 0)
	q := newTestQueue(&now)
	q.Show("x", Warning, "hold on")
	q.Dismiss("x")
	if len(q.Active()) != 0 {
		t.Fatalf("Dismiss left toast behind")
	}
}
