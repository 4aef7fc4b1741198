package gauge

import (
	"time"
)

// Ease maps linear progress t in [0, 1] onto eased progress.
type Ease func(t float64) float64

// EaseQuadInOut accelerates through the first half and decelerates through
// the second.
func EaseQuadInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t / 2
	}
	t--
	return (t*(2-t) + 1) / 2
}

// EaseLinear applies no easing.
func EaseLinear(t float64) float64 { return t }

// Tween interpolates a number over time. The zero Tween holds 0 forever.
type Tween struct {
	From     float64       `json:"from"`
	To       float64       `json:"to"`
	Start    time.Time     `json:"start"`
	Delay    time.Duration `json:"delay"`
	Duration time.Duration `json:"duration"`
	ease     Ease
}

// Hold returns a tween that stays at v.
func Hold(v float64) Tween {
	return Tween{From: v, To: v}
}

// Progress returns eased progress in [0, 1] at now.
func (tw Tween) Progress(now time.Time) float64 {
	elapsed := now.Sub(tw.Start) - tw.Delay
	switch {
	case elapsed < 0:
		return 0
	case elapsed >= tw.Duration:
		return 1
	}
	t := float64(elapsed) / float64(tw.Duration)
	if tw.ease != nil {
		t = tw.ease(t)
	}
	return t
}

// At returns the interpolated value at now.
func (tw Tween) At(now time.Time) float64 {
	t := tw.Progress(now)
	return tw.From*(1-t) + tw.To*t
}

// Done reports whether the tween has reached its target at now.
func (tw Tween) Done(now time.Time) bool {
	return !now.Before(tw.End())
}

// End is when the tween reaches its target.
func (tw Tween) End() time.Time {
	return tw.Start.Add(tw.Delay + tw.Duration)
}

// Retarget starts a new tween towards to from wherever tw is at now, so an
// interrupted transition continues smoothly rather than jumping.
func (tw Tween) Retarget(to float64, now time.Time, delay, duration time.Duration, ease Ease) Tween {
	return Tween{
		From:     tw.At(now),
		To:       to,
		Start:    now,
		Delay:    delay,
		Duration: duration,
		ease:     ease,
	}
}

// TextSwap replaces a label at a fixed instant.
type TextSwap struct {
	Prev string    `json:"prev"`
	Next string    `json:"next"`
	At   time.Time `json:"at"`
}

// Text returns the label shown at now.
func (s TextSwap) Text(now time.Time) string {
	if now.Before(s.At) {
		return s.Prev
	}
	return s.Next
}

// Retarget schedules next to replace whatever is shown at now.
func (s TextSwap) Retarget(next string, now, at time.Time) TextSwap {
	return TextSwap{Prev: s.Text(now), Next: next, At: at}
}
