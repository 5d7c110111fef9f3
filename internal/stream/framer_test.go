package stream

import (
	"errors"
	"testing"
)

func drain(m *Mailbox) []string {
	var out []string
	for {
		line, ok := m.TryRecv()
		if !ok {
			return out
		}
		out = append(out, line)
	}
}

func TestAcceptFramesLines(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []string
	}{
		{
			name:   "split across chunks",
			chunks: []string{"AB", "C\nDE", "F\n"},
			want:   []string{"ABC", "DEF"},
		},
		{
			name:   "single chunk multiple lines",
			chunks: []string{"one\ntwo\nthree\n"},
			want:   []string{"one", "two", "three"},
		},
		{
			name:   "carriage returns stripped",
			chunks: []string{"alpha\r\nbeta\r\n"},
			want:   []string{"alpha", "beta"},
		},
		{
			name:   "interior CR preserved",
			chunks: []string{"a\rb\n"},
			want:   []string{"a\rb"},
		},
		{
			name:   "empty lines emitted",
			chunks: []string{"\n\nx\n"},
			want:   []string{"", "", "x"},
		},
		{
			name:   "utf8 rune split across chunks",
			chunks: []string{"h\xc3", "\xa9llo\n"},
			want:   []string{"héllo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mbox := NewMailbox()
			f := NewLineFramer(mbox)
			for _, chunk := range tt.chunks {
				if err := f.Accept([]byte(chunk)); err != nil {
					t.Fatalf("Accept(%q) returned error: %v", chunk, err)
				}
			}
			got := drain(mbox)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %q, want %d lines %q", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAcceptDropsInvalidUTF8(t *testing.T) {
	mbox := NewMailbox()
	f := NewLineFramer(mbox)

	// Valid line, then a segment with a lone continuation byte, then valid again.
	if err := f.Accept([]byte("good\n\xffbad\nrecovered\n")); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}

	got := drain(mbox)
	want := []string{"good", "recovered"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAcceptRetainsPartialLine(t *testing.T) {
	mbox := NewMailbox()
	f := NewLineFramer(mbox)

	if err := f.Accept([]byte("no newline yet")); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if got := drain(mbox); len(got) != 0 {
		t.Fatalf("partial line emitted early: %q", got)
	}
	if f.Pending() == 0 {
		t.Fatal("expected buffered partial line")
	}

	if err := f.Accept([]byte(" done\n")); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	got := drain(mbox)
	if len(got) != 1 || got[0] != "no newline yet done" {
		t.Fatalf("got %q, want [\"no newline yet done\"]", got)
	}
	if f.Pending() != 0 {
		t.Fatalf("expected empty buffer, %d bytes pending", f.Pending())
	}
}

func TestAcceptFailsAfterConsumerGone(t *testing.T) {
	mbox := NewMailbox()
	f := NewLineFramer(mbox)

	mbox.CloseConsumer()
	err := f.Accept([]byte("orphan\n"))
	if !errors.Is(err, ErrConsumerGone) {
		t.Fatalf("Accept after CloseConsumer = %v, want ErrConsumerGone", err)
	}
}

func TestWriteAdaptsAccept(t *testing.T) {
	mbox := NewMailbox()
	f := NewLineFramer(mbox)

	n, err := f.Write([]byte("line\n"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n != 5 {
		t.Fatalf("Write reported %d bytes, want 5", n)
	}

	mbox.CloseConsumer()
	if _, err := f.Write([]byte("x\n")); !errors.Is(err, ErrConsumerGone) {
		t.Fatalf("Write after CloseConsumer = %v, want ErrConsumerGone", err)
	}
}

func TestFlushIsNoOp(t *testing.T) {
	mbox := NewMailbox()
	f := NewLineFramer(mbox)

	if err := f.Accept([]byte("partial")); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if got := drain(mbox); len(got) != 0 {
		t.Fatalf("Flush surfaced partial line: %q", got)
	}
}
