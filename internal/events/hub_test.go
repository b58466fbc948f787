package events

import (
	"encoding/json"
	"testing"
)

func TestPublishReachesSubscribers(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Publish(MakeEvent("req-1", TypeApplicationCreated, 1, map[string]any{"id": "x"}))

	for _, ch := range []chan string{a, b} {
		select {
		case msg := <-ch:
			var e Event
			if err := json.Unmarshal([]byte(msg), &e); err != nil {
				t.Fatalf("event is not JSON: %v", err)
			}
			if e.Type != TypeApplicationCreated || e.RequestID != "req-1" {
				t.Errorf("envelope: %+v", e)
			}
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// fill the buffer and keep publishing; Publish must never block
	for i := 0; i < 50; i++ {
		h.Publish(MakeEvent("", TypePing, 1, nil))
	}

	n := 0
	for {
		select {
		case <-ch:
			n++
			continue
		default:
		}
		break
	}
	if n == 0 || n > 10 {
		t.Errorf("buffered %d events, want 1..10", n)
	}
}
