package eventbus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe()
	b.Publish(42)
	select {
	case v := <-sub:
		if v != 42 {
			t.Fatalf("got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestEventsBufferedBeforeDraining(t *testing.T) {
	b := New[string]()
	sub := b.Subscribe()
	b.Publish("early")
	// The subscriber only starts reading now; the event must still be there.
	select {
	case v := <-sub:
		if v != "early" {
			t.Fatalf("got %q", v)
		}
	default:
		t.Fatal("event published before draining was lost")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New[string]()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe()
	b.Close()
	b.Publish(1)
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
}

func TestSlowSubscriberDropsAndCounts(t *testing.T) {
	b := NewBuffered[int](4)
	sub := b.Subscribe()
	for i := 0; i < 10; i++ {
		b.Publish(i)
	}
	n := 0
	for {
		select {
		case <-sub:
			n++
		default:
			if n != 4 {
				t.Fatalf("buffered %d events, want 4", n)
			}
			if b.Dropped() != 6 {
				t.Fatalf("dropped %d, want 6", b.Dropped())
			}
			return
		}
	}
}
