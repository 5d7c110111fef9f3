package stream

import (
	"errors"
	"testing"
	"time"
)

func TestMailboxSendRecvOrder(t *testing.T) {
	m := NewMailbox()
	for _, line := range []string{"a", "b", "c"} {
		if err := m.Send(line); err != nil {
			t.Fatalf("Send(%q) returned error: %v", line, err)
		}
	}
	got := drain(m)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMailboxTryRecvEmpty(t *testing.T) {
	m := NewMailbox()
	if line, ok := m.TryRecv(); ok {
		t.Fatalf("TryRecv on empty mailbox returned %q", line)
	}
}

func TestMailboxSendAfterClose(t *testing.T) {
	m := NewMailbox()
	m.CloseConsumer()
	m.CloseConsumer() // idempotent
	if err := m.Send("late"); !errors.Is(err, ErrConsumerGone) {
		t.Fatalf("Send after close = %v, want ErrConsumerGone", err)
	}
}

func TestMailboxCloseUnblocksFullSend(t *testing.T) {
	m := NewMailbox()
	for i := 0; i < mailboxDepth; i++ {
		if err := m.Send("fill"); err != nil {
			t.Fatalf("fill Send returned error: %v", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Send("blocked")
	}()

	select {
	case err := <-errCh:
		t.Fatalf("Send on full mailbox returned early: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	m.CloseConsumer()
	select {
	case err := <-errCh:
		if !errors.Is(err, ErrConsumerGone) {
			t.Fatalf("unblocked Send = %v, want ErrConsumerGone", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Send still blocked after CloseConsumer")
	}
}
