package game

import (
	"cmp"
	"slices"
	"time"
)

// NoticeKind selects one of the two transient notice slots.
type NoticeKind int

const (
	NoticeTip     NoticeKind = iota // safety tip popup
	NoticeMessage                   // generic toast
)

const noticeKinds = 2

func (k NoticeKind) String() string {
	switch k {
	case NoticeTip:
		return "tip"
	case NoticeMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Notice is the visible state of one notice slot.
// Generation increases on every show so a timer scheduled for an older
// notice can be told apart from the current one.
type Notice struct {
	Kind       NoticeKind
	Visible    bool
	Generation uint64
	TipID      int
	Text       string
}

func (s *Store) noticeTTL(kind NoticeKind) time.Duration {
	secs := s.rules.Notices.MessageSeconds
	if kind == NoticeTip {
		secs = s.rules.Notices.TipSeconds
	}
	return time.Duration(secs * float64(time.Second))
}

func (s *Store) showNotice(kind NoticeKind, tipID int, text string) {
	n := &s.notices[kind]
	n.Kind = kind
	n.Visible = true
	n.Generation++
	n.TipID = tipID
	n.Text = text
	s.publish(NoticeShownEvent{Kind: kind, Generation: n.Generation, TTL: s.noticeTTL(kind)})
}

func (s *Store) clearNotice(kind NoticeKind) {
	n := &s.notices[kind]
	if !n.Visible {
		return
	}
	n.Visible = false
	n.TipID = 0
	n.Text = ""
	s.publish(NoticeClearedEvent{Kind: kind, Generation: n.Generation})
}

// Notice returns the current state of a notice slot.
func (s *Store) Notice(kind NoticeKind) Notice {
	if kind < 0 || int(kind) >= noticeKinds {
		return Notice{Kind: kind}
	}
	return s.notices[kind]
}

// ShowTip opens the tip popup for tipID.
func (s *Store) ShowTip(tipID int) {
	text := ""
	if tip, ok := s.tips.Get(tipID); ok {
		text = tip.Title
	}
	s.showNotice(NoticeTip, tipID, text)
}

// HideTip closes the tip popup.
func (s *Store) HideTip() {
	s.clearNotice(NoticeTip)
}

// DismissNotification hides the message toast.
func (s *Store) DismissNotification() {
	s.clearNotice(NoticeMessage)
}

// ExpireNotice hides a notice only if it is still the one shown at
// generation gen. It reports whether anything was cleared.
func (s *Store) ExpireNotice(kind NoticeKind, gen uint64) bool {
	if kind < 0 || int(kind) >= noticeKinds {
		return false
	}
	n := s.notices[kind]
	if !n.Visible || n.Generation != gen {
		return false
	}
	s.clearNotice(kind)
	return true
}

// Notify shows text in the message toast.
func (s *Store) Notify(text string) {
	s.showNotice(NoticeMessage, 0, text)
}

// Timers is a tick-driven one-shot scheduler. It has no goroutines: the
// owner calls Advance once per simulation tick.
type Timers struct {
	tick    uint64
	seq     uint64
	pending []timer
}

type timer struct {
	due uint64
	seq uint64
	fn  func()
}

// After schedules fn to run once ticks more ticks have elapsed.
func (t *Timers) After(ticks uint64, fn func()) {
	if ticks == 0 {
		ticks = 1
	}
	t.seq++
	t.pending = append(t.pending, timer{due: t.tick + ticks, seq: t.seq, fn: fn})
}

// Advance moves time forward one tick and runs every timer that fell due,
// in scheduling order.
func (t *Timers) Advance() {
	t.tick++

	var due []timer
	kept := t.pending[:0]
	for _, tm := range t.pending {
		if tm.due <= t.tick {
			due = append(due, tm)
		} else {
			kept = append(kept, tm)
		}
	}
	t.pending = kept

	slices.SortFunc(due, func(a, b timer) int {
		return cmp.Or(cmp.Compare(a.due, b.due), cmp.Compare(a.seq, b.seq))
	})
	for _, tm := range due {
		tm.fn()
	}
}

// Pending returns the number of scheduled timers.
func (t *Timers) Pending() int {
	return len(t.pending)
}

// Reset drops every pending timer.
func (t *Timers) Reset() {
	t.pending = nil
}
