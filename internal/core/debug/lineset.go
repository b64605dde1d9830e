// Package debug collects debug geometry produced during a tick, to be drawn
// or streamed by whoever drains it. The buffer is passed to its producers
// explicitly; there is no process-wide instance.
package debug

import (
	"sync"

	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/pkg/sequence"
	"github.com/scenelink/scenelink/pkg/vec"
)

// Segment is one colored debug line in engine space.
type Segment struct {
	From  vec.Vector3  `json:"from"`
	To    vec.Vector3  `json:"to"`
	Color engine.Color `json:"color"`
}

// LineSet is a bounded buffer of debug segments. Past the bound the oldest
// segments are evicted, so a stalled consumer cannot grow it unbounded.
type LineSet struct {
	mu   sync.Mutex
	max  int
	segs *sequence.Queue[Segment]
}

// NewLineSet creates a buffer retaining at most max segments.
func NewLineSet(max int) *LineSet {
	if max < 1 {
		max = 1
	}
	return &LineSet{max: max, segs: sequence.NewQueue[Segment](max)}
}

// AddSegment appends one segment, evicting the oldest when full.
func (l *LineSet) AddSegment(from, to vec.Vector3, color engine.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.segs.PushBack(Segment{From: from, To: to, Color: color})
	for l.segs.Len() > l.max {
		l.segs.PopFront()
	}
}

// Drain returns the buffered segments and clears the buffer.
func (l *LineSet) Drain() []Segment {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.segs.Collect()
	l.segs = sequence.NewQueue[Segment](l.max)
	return out
}

// Len returns the number of buffered segments.
func (l *LineSet) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.segs.Len()
}
