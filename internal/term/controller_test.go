package term

import (
	"bytes"
	"strings"
	"testing"
)

// fakeScreen scripts the size and cursor-row queries a controller makes.
type fakeScreen struct {
	size       Size
	row        int
	rowQueries int
}

func (f *fakeScreen) sizeFunc() (Size, error) {
	return f.size, nil
}

func (f *fakeScreen) rowFunc() (int, error) {
	f.rowQueries++
	return f.row, nil
}

func newTestController(scr *fakeScreen) (*Controller, *bytes.Buffer) {
	var out bytes.Buffer
	return NewController(&out, scr.sizeFunc, scr.rowFunc), &out
}

func TestInitScrollsExistingLinesToTop(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 80, H: 24}, row: 5}
	c, out := newTestController(scr)

	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "\x1b[5S") {
		t.Errorf("output %q missing scroll-up by cursor row", got)
	}
	if !strings.Contains(got, "\x1b[1;1H") {
		t.Errorf("output %q missing home positioning", got)
	}
	if c.Viewport() != (Rect{X: 0, Y: 0, W: 80, H: 0}) {
		t.Errorf("viewport after init = %+v", c.Viewport())
	}
}

func TestInitAtTopSkipsScroll(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 80, H: 24}, row: 0}
	c, out := newTestController(scr)

	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if strings.Contains(out.String(), "S") {
		t.Errorf("output %q scrolled despite cursor already at top", out.String())
	}
}

func TestDrawWrapsFrameInSynchronizedScope(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 80, H: 24}}
	c, out := newTestController(scr)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	out.Reset()

	if err := c.Draw([]string{"alpha", "beta"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	got := out.String()
	begin := strings.Index(got, "\x1b[?2026h")
	content := strings.Index(got, "alpha")
	end := strings.Index(got, "\x1b[?2026l")
	if begin < 0 || content < 0 || end < 0 {
		t.Fatalf("output %q missing sync scope or content", got)
	}
	if !(begin < content && content < end) {
		t.Errorf("frame content not inside sync scope: begin=%d content=%d end=%d", begin, content, end)
	}
	if end != strings.LastIndex(got, "\x1b[?2026l") || end < strings.LastIndex(got, "beta") {
		t.Errorf("sync scope closed before last frame bytes: %q", got)
	}
}

func TestDrawGrowsViewportWithContent(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 40, H: 24}}
	c, _ := newTestController(scr)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := c.Draw([]string{"1", "2", "3"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := c.Viewport(); got != (Rect{X: 0, Y: 0, W: 40, H: 3}) {
		t.Errorf("viewport = %+v, want 3 rows at top", got)
	}

	// Taller than the screen: clamp to screen height.
	tall := make([]string, 30)
	for i := range tall {
		tall[i] = "x"
	}
	if err := c.Draw(tall); err != nil {
		t.Fatalf("Draw tall: %v", err)
	}
	if got := c.Viewport().H; got != 24 {
		t.Errorf("viewport height = %d, want clamped to 24", got)
	}
}

func TestEnterLeaveAltScreenRestoresInlineRect(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 80, H: 24}}
	c, out := newTestController(scr)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Draw([]string{"a", "b", "c", "d"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	inline := c.Viewport()
	out.Reset()

	c.EnterAltScreen()
	if c.Mode() != ModeAlternate {
		t.Fatal("mode did not switch to alternate")
	}
	if got := c.Viewport(); got != (Rect{X: 0, Y: 0, W: 80, H: 24}) {
		t.Errorf("alternate viewport = %+v, want full screen", got)
	}
	got := out.String()
	if !strings.Contains(got, "\x1b[?1049h") || !strings.Contains(got, "\x1b[?1007h") {
		t.Errorf("output %q missing alt-screen or alternate-scroll enable", got)
	}

	out.Reset()
	c.LeaveAltScreen()
	if c.Mode() != ModeInline {
		t.Fatal("mode did not switch back to inline")
	}
	if got := c.Viewport(); got != inline {
		t.Errorf("restored viewport = %+v, want the exact pre-alternate rect %+v", got, inline)
	}
	leave := out.String()
	if !strings.Contains(leave, "\x1b[?1007l") || !strings.Contains(leave, "\x1b[?1049l") {
		t.Errorf("output %q missing alternate-scroll disable or alt-screen exit", leave)
	}
}

func TestResizeRealignsViewportByCursorDelta(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 80, H: 24}, row: 0}
	c, _ := newTestController(scr)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Draw([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// Cursor parked on the viewport's last row.
	if c.lastCursorRow != 4 {
		t.Fatalf("lastCursorRow = %d, want 4", c.lastCursorRow)
	}

	// The terminal shrinks and reflows our rows two lines down.
	scr.size = Size{W: 80, H: 20}
	scr.row = 6
	if err := c.Draw([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatalf("Draw after resize: %v", err)
	}
	if got := c.Viewport().Y; got != 2 {
		t.Errorf("viewport row = %d, want shifted by cursor delta to 2", got)
	}
}

func TestResizeWithoutCursorShiftKeepsViewport(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 80, H: 24}, row: 0}
	c, _ := newTestController(scr)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Draw([]string{"a", "b"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	scr.size = Size{W: 100, H: 24}
	scr.row = c.lastCursorRow
	if err := c.Draw([]string{"a", "b"}); err != nil {
		t.Fatalf("Draw after resize: %v", err)
	}
	if got := c.Viewport().Y; got != 0 {
		t.Errorf("viewport row = %d, want unchanged 0", got)
	}
}

func TestSuspendFromInlineRealignsOnce(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 80, H: 24}, row: 0}
	c, out := newTestController(scr)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Draw([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	out.Reset()

	c.PrepareSuspend()
	if !strings.Contains(out.String(), "\x1b[?25h") {
		t.Errorf("output %q did not show the cursor for the shell", out.String())
	}

	// The shell printed a few lines while we were stopped.
	scr.row = 7
	if err := c.Draw([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("Draw after resume: %v", err)
	}
	if got := c.Viewport().Y; got != 7 {
		t.Errorf("viewport row = %d, want realigned to cursor row 7", got)
	}

	// The intent is single-shot: a further draw must not realign again.
	scr.row = 2
	scr.size = c.lastSize
	if err := c.Draw([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("second Draw after resume: %v", err)
	}
	if got := c.Viewport().Y; got != 7 {
		t.Errorf("viewport row = %d after second draw, want still 7", got)
	}
}

func TestSuspendFromAlternateRestoresAlternate(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 80, H: 24}, row: 0}
	c, out := newTestController(scr)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Draw([]string{"a", "b"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	c.EnterAltScreen()
	out.Reset()

	c.PrepareSuspend()
	got := out.String()
	if !strings.Contains(got, "\x1b[?1049l") || !strings.Contains(got, "\x1b[?1007l") {
		t.Errorf("suspend output %q did not leave the alternate surface", got)
	}

	out.Reset()
	scr.row = 9
	if err := c.Draw([]string{"full", "screen"}); err != nil {
		t.Fatalf("Draw after resume: %v", err)
	}
	resumed := out.String()
	if !strings.Contains(resumed, "\x1b[?1049h") {
		t.Errorf("resume output %q did not re-enter the alternate surface", resumed)
	}
	if c.Mode() != ModeAlternate {
		t.Error("mode is not alternate after resume")
	}
	if c.savedInline.Y != 9 {
		t.Errorf("saved inline row = %d, want tracked to shell cursor row 9", c.savedInline.Y)
	}
}

func TestViewportOverflowScrollsHistoryIntoScrollback(t *testing.T) {
	scr := &fakeScreen{size: Size{W: 80, H: 10}, row: 0}
	c, out := newTestController(scr)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Draw([]string{"a"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// Park the viewport at row 6 via a suspend realign, then grow past the
	// bottom of a 10-row screen.
	c.PrepareSuspend()
	scr.row = 6
	out.Reset()
	lines := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	if err := c.Draw(lines); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	got := out.String()
	// Rows 0..5 scroll up by the 4-row overflow inside a scroll region.
	if !strings.Contains(got, "\x1b[1;6r") || !strings.Contains(got, "\x1b[4S") {
		t.Errorf("output %q missing region scroll for viewport overflow", got)
	}
	if vp := c.Viewport(); vp.Y != 2 || vp.H != 8 {
		t.Errorf("viewport = %+v, want 8 rows ending at the screen bottom", vp)
	}
}

func TestRequestCursorReport(t *testing.T) {
	var out bytes.Buffer
	if err := RequestCursorReport(&out); err != nil {
		t.Fatalf("RequestCursorReport: %v", err)
	}
	if out.String() != "\x1b[6n" {
		t.Errorf("wrote %q, want CPR query", out.String())
	}
}
