package event_test

import (
	"testing"

	"github.com/shashiranjanraj/bodega/pkg/event"
)

func TestListenAndFire(t *testing.T) {
	t.Cleanup(event.Flush)

	var got []interface{}
	event.Listen("test.ping", func(p interface{}) { got = append(got, p) })

	event.Fire("test.ping", 1)
	event.Fire("test.ping", 2)
	event.Fire("test.other", 99)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("unexpected payloads: %v", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	t.Cleanup(event.Flush)

	calls := 0
	unsub := event.Listen("test.ping", func(interface{}) { calls++ })

	event.Fire("test.ping", nil)
	unsub()
	event.Fire("test.ping", nil)
	unsub() // second call is a no-op

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestUnsubscribeRemovesOnlyItsListener(t *testing.T) {
	t.Cleanup(event.Flush)

	a, b := 0, 0
	unsubA := event.Listen("test.ping", func(interface{}) { a++ })
	event.Listen("test.ping", func(interface{}) { b++ })

	unsubA()
	event.Fire("test.ping", nil)

	if a != 0 || b != 1 {
		t.Errorf("expected a=0 b=1, got a=%d b=%d", a, b)
	}
}

func TestFireWithNoListeners(t *testing.T) {
	t.Cleanup(event.Flush)
	event.Fire("test.nobody", "payload") // must not panic
}
