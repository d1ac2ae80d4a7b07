package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

type fakeChannel struct {
	mu       sync.Mutex
	payloads []any
	err      error
}

func (c *fakeChannel) Send(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.payloads = append(c.payloads, payload)
	return nil
}

func (c *fakeChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.payloads)
}

func TestPushToConnectedSession(t *testing.T) {
	r := NewRegistry()
	ch := &fakeChannel{}
	r.Connect("tok", ch)

	if !r.Push("tok", "hello") {
		t.Fatal("push to connected session should report delivery")
	}
	if ch.count() != 1 {
		t.Fatalf("channel received %d payloads, want 1", ch.count())
	}
}

func TestPushToAbsentSessionIsDropped(t *testing.T) {
	r := NewRegistry()

	if r.Push("nobody", "hello") {
		t.Fatal("push to absent session should report not delivered")
	}
}

func TestPushAfterDisconnectIsDropped(t *testing.T) {
	r := NewRegistry()
	ch := &fakeChannel{}
	r.Connect("tok", ch)
	r.Disconnect("tok")

	if r.Push("tok", "hello") {
		t.Fatal("push after disconnect should report not delivered")
	}
	if ch.count() != 0 {
		t.Fatalf("disconnected channel received %d payloads", ch.count())
	}
}

func TestPushSendErrorReportsNotDelivered(t *testing.T) {
	r := NewRegistry()
	r.Connect("tok", &fakeChannel{err: errors.New("write: broken pipe")})

	if r.Push("tok", "hello") {
		t.Fatal("failed send should report not delivered")
	}
}

func TestReconnectOverwritesChannel(t *testing.T) {
	r := NewRegistry()
	old := &fakeChannel{}
	fresh := &fakeChannel{}
	r.Connect("tok", old)
	r.Connect("tok", fresh)

	r.Push("tok", "hello")

	if old.count() != 0 {
		t.Fatal("stale channel should not receive payloads")
	}
	if fresh.count() != 1 {
		t.Fatal("replacement channel should receive payloads")
	}
	if r.Len() != 1 {
		t.Fatalf("registry holds %d sessions, want 1", r.Len())
	}
}

func TestDisconnectChannelOnlyRemovesOwnMapping(t *testing.T) {
	r := NewRegistry()
	old := &fakeChannel{}
	fresh := &fakeChannel{}
	r.Connect("tok", old)
	r.Connect("tok", fresh)

	// The stale connection tears down after being replaced. It must not
	// evict the replacement.
	r.DisconnectChannel("tok", old)

	if !r.Push("tok", "hello") {
		t.Fatal("replacement channel should still be registered")
	}

	r.DisconnectChannel("tok", fresh)
	if r.Push("tok", "hello") {
		t.Fatal("session should be gone after its own channel disconnects")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("tok-%d", i%4)
			ch := &fakeChannel{}
			r.Connect(token, ch)
			for j := 0; j < 50; j++ {
				r.Push(token, j)
			}
			r.DisconnectChannel(token, ch)
		}(i)
	}
	wg.Wait()

	if r.Len() != 0 {
		t.Fatalf("registry should be empty, holds %d", r.Len())
	}
}
