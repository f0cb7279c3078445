package interaction

import (
	"time"

	"noter/internal/logs"
	"noter/internal/notes/models"
)

// SettleDuration is how long a note animates after an interaction ends
const SettleDuration = 150 * time.Millisecond

// Transform is the visual offset of a note from its committed geometry while
// a frame commit is pending
type Transform struct {
	DX, DY float64
	DW, DH float64
}

// IsZero reports whether the transform leaves the note where it is committed
func (t Transform) IsZero() bool {
	return t == Transform{}
}

// CommitFunc writes a patch to the collection
type CommitFunc func(models.Patch) error

// Scheduler coalesces the patches of one note's interaction into at most one
// commit per frame. The latest candidate is shown immediately through the
// optimistic transform; the collection catches up on the next frame.
type Scheduler struct {
	frames FrameClock
	commit CommitFunc
	now    func() time.Time

	pending    models.Patch
	hasPending bool
	frame      FrameID
	scheduled  bool

	transform   Transform
	settleUntil time.Time
}

// NewScheduler creates a scheduler committing through commit on frames
func NewScheduler(frames FrameClock, commit CommitFunc, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{frames: frames, commit: commit, now: now}
}

// Push buffers a patch and shows t right away. Later patches overwrite earlier
// fields; only one frame is ever requested at a time.
func (s *Scheduler) Push(p models.Patch, t Transform) {
	if s.hasPending {
		s.pending = s.pending.Merge(p)
	} else {
		s.pending = p
		s.hasPending = true
	}
	s.transform = t

	if !s.scheduled {
		s.frame = s.frames.RequestFrame(s.flush)
		s.scheduled = true
	}
}

// Finish cancels the scheduled frame, commits whatever is buffered and
// clears the transform. The final update is never lost.
func (s *Scheduler) Finish() {
	s.cancelFrame()
	s.apply()
	s.transform = Transform{}
	s.settleUntil = s.now().Add(SettleDuration)
}

// Discard drops the scheduled frame and buffered patch without committing,
// used when the note itself goes away mid-interaction.
func (s *Scheduler) Discard() {
	s.cancelFrame()
	s.pending = models.Patch{}
	s.hasPending = false
	s.transform = Transform{}
}

// Transform returns the current optimistic offset
func (s *Scheduler) Transform() Transform {
	return s.transform
}

// Scheduled reports whether a frame commit is outstanding
func (s *Scheduler) Scheduled() bool {
	return s.scheduled
}

// Settling reports whether the note is inside its post-interaction transition
func (s *Scheduler) Settling() bool {
	return s.now().Before(s.settleUntil)
}

func (s *Scheduler) flush() {
	s.scheduled = false
	s.apply()
	s.transform = Transform{}
}

func (s *Scheduler) apply() {
	if !s.hasPending {
		return
	}
	p := s.pending
	s.pending = models.Patch{}
	s.hasPending = false

	if p.IsEmpty() {
		return
	}
	if err := s.commit(p); err != nil {
		logs.Logger.Printf("Error committing interaction patch: %v", err)
	}
}

func (s *Scheduler) cancelFrame() {
	if s.scheduled {
		s.frames.CancelFrame(s.frame)
		s.scheduled = false
	}
}
