// Package toast implements the single-slot, self-expiring notification
// used for import results, copy confirmations, and update notices.
package toast

import "time"

// Toast is the currently visible notification. Seq increases with every
// Show call, so re-showing an identical message still reads as a new toast
// (and re-triggers any entry animation keyed on it).
type Toast struct {
	// Seq is the monotonically increasing id of this toast.
	Seq uint64

	// Message is the visible text.
	Message string

	// Duration is how long the toast stays up. Zero means sticky: the
	// toast persists until an explicit Dismiss.
	Duration time.Duration

	// Payload is optional contextual data attached to the toast, such as
	// a download link carried by an update notice.
	Payload string
}

// Sticky reports whether the toast has no auto-dismiss.
func (t Toast) Sticky() bool {
	return t.Duration == 0
}

// Scheduler holds at most one visible toast. Showing a new toast replaces
// the current one immediately; there is no queueing. Expiry is driven by
// the caller: after Show, schedule a call to Expire with the returned
// toast's Seq once its Duration elapses. A stale Seq expires nothing, which
// is what cancels the previous toast's pending dismissal.
type Scheduler struct {
	seq     uint64
	current *Toast
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Show replaces any visible toast with a new one and returns it.
func (s *Scheduler) Show(message string, d time.Duration) Toast {
	return s.ShowWithPayload(message, d, "")
}

// ShowWithPayload is Show with an attached contextual payload.
func (s *Scheduler) ShowWithPayload(message string, d time.Duration, payload string) Toast {
	s.seq++
	t := Toast{
		Seq:      s.seq,
		Message:  message,
		Duration: d,
		Payload:  payload,
	}
	s.current = &t
	return t
}

// Current returns the visible toast, if any.
func (s *Scheduler) Current() (Toast, bool) {
	if s.current == nil {
		return Toast{}, false
	}
	return *s.current, true
}

// Expire clears the toast identified by seq. It is a no-op when seq is not
// the visible toast or when the visible toast is sticky, so a timer fired
// for a replaced toast can never clear its successor.
func (s *Scheduler) Expire(seq uint64) bool {
	if s.current == nil || s.current.Seq != seq || s.current.Sticky() {
		return false
	}
	s.current = nil
	return true
}

// Dismiss clears the visible toast, message and payload together,
// regardless of its duration.
func (s *Scheduler) Dismiss() {
	s.current = nil
}
