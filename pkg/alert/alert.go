// Package alert implements the threshold-crossing alert debouncer.
//
// A pacing percentage that oscillates around the configured threshold must
// not produce an alert storm. The debouncer tracks the last 10-point bucket
// it notified for and fires at most once per bucket crossed upward; it rearms
// only once the value has dropped a full 10 points below the threshold.
//
// State is owned by the caller and passed explicitly into Evaluate, keeping
// the function deterministic and testable without an instance lifecycle. The
// caller serializes Evaluate calls (one refresh in flight at a time).
package alert

import (
	"math"
	"strconv"
)

// CriticalPercent is the pacing level at which alerts escalate to a
// distinct message and sound.
const CriticalPercent = 95

// rearmMargin is how far below the threshold pacing must drop before the
// debouncer rearms.
const rearmMargin = 10

// Severity classifies an alert message.
type Severity int

const (
	// SeverityInfo is a plain informational alert.
	SeverityInfo Severity = iota

	// SeverityCritical is an escalated alert with sound.
	SeverityCritical
)

// String returns the severity's display name.
func (s Severity) String() string {
	if s == SeverityCritical {
		return "critical"
	}
	return "info"
}

// State is the debouncer's owned state: the last 10-point bucket an alert
// was sent for, 0 when armed. The zero value is ready to use.
type State struct {
	LastNotifiedBucket float64
}

// Message is a fire decision: what to say, not how to deliver it.
type Message struct {
	Title    string
	Body     string
	Severity Severity

	// Sound requests an audible notification.
	Sound bool

	// Bucket is the 10-point band that triggered this message, usable as a
	// dedup identifier by delivery mechanisms.
	Bucket int
}

// Evaluate decides whether an alert should fire for the given pacing value.
//
// Parameters:
//   - state: Current debouncer state (returned updated)
//   - pacing: Pacing percentage, 0..100
//   - threshold: Configured alert threshold percentage
//   - permitted: External permission gate; when false nothing ever fires
//
// Returns the new state and a message, or nil when no alert should fire.
//
// Below the threshold the debouncer rearms only once pacing has dropped
// below threshold-10. At or above the threshold it fires once per 10-point
// bucket crossed upward.
func Evaluate(state State, pacing, threshold float64, permitted bool) (State, *Message) {
	if !permitted {
		return state, nil
	}

	if pacing < threshold {
		if pacing < threshold-rearmMargin {
			state.LastNotifiedBucket = 0
		}
		return state, nil
	}

	bucket := math.Floor(pacing/10) * 10
	if bucket <= state.LastNotifiedBucket {
		return state, nil
	}
	state.LastNotifiedBucket = bucket

	return state, newMessage(pacing, int(bucket))
}

func newMessage(pacing float64, bucket int) *Message {
	msg := &Message{
		Title:  "Claude Compass",
		Bucket: bucket,
	}

	if pacing >= CriticalPercent {
		msg.Severity = SeverityCritical
		msg.Sound = true
		msg.Body = formatBody(pacing) + " — you're near your typical limit."
	} else {
		msg.Severity = SeverityInfo
		msg.Body = formatBody(pacing) + "."
	}

	return msg
}

func formatBody(pacing float64) string {
	return "Usage at " + strconv.Itoa(int(pacing)) + "% of your daily average"
}
