package scrollback

// ScrollState chooses the visible window over the buffer: either pinned to
// the newest content (tail-follow) or at a manual offset. Offset is the
// buffer index of the first visible line and always stays within
// [0, maxScroll]. XOffset is the horizontal column the window starts at.
type ScrollState struct {
	Offset     int
	XOffset    int
	FollowTail bool
}

// NewScrollState starts in tail-follow, the mode a live log viewer opens in.
func NewScrollState() ScrollState {
	return ScrollState{FollowTail: true}
}

func maxScroll(total, height int) int {
	if m := total - height; m > 0 {
		return m
	}
	return 0
}

// Tick recomputes the offset for the current buffer size and viewport
// height. While following, the offset snaps to maxScroll so fresh appends
// keep the bottom visible; in manual mode it only clamps, so a shrinking or
// growing viewport cannot push the window out of range.
func (s *ScrollState) Tick(total, height int) {
	m := maxScroll(total, height)
	if s.FollowTail || s.Offset > m {
		s.Offset = m
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
}

// LineUp scrolls one line toward older content and leaves tail-follow.
func (s *ScrollState) LineUp(total, height int) {
	s.FollowTail = false
	if s.Offset > 0 {
		s.Offset--
	}
}

// LineDown scrolls one line toward newer content. Landing exactly on the
// bottom re-arms tail-follow; anywhere short of it stays manual.
func (s *ScrollState) LineDown(total, height int) {
	m := maxScroll(total, height)
	if s.Offset < m {
		s.Offset++
	}
	s.FollowTail = s.Offset == m
}

// Left shifts the horizontal window toward column zero. Like the vertical
// steps it is a manual input and leaves tail-follow.
func (s *ScrollState) Left() {
	s.FollowTail = false
	if s.XOffset > 0 {
		s.XOffset--
	}
}

// Right shifts the horizontal window one column further into long lines.
// maxX is the widest rendered line minus the viewport width.
func (s *ScrollState) Right(maxX int) {
	s.FollowTail = false
	if s.XOffset < maxX {
		s.XOffset++
	}
}

// JumpTop scrolls to the oldest buffered line and leaves tail-follow.
func (s *ScrollState) JumpTop() {
	s.FollowTail = false
	s.Offset = 0
}

// JumpBottom scrolls to the newest content and re-arms tail-follow.
func (s *ScrollState) JumpBottom(total, height int) {
	s.Offset = maxScroll(total, height)
	s.FollowTail = true
}

// ReduceOffset compensates for head evictions so the user's apparent view
// position is preserved, floored at zero.
func (s *ScrollState) ReduceOffset(evicted int) {
	s.Offset -= evicted
	if s.Offset < 0 {
		s.Offset = 0
	}
}
