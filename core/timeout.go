package core

import "time"

const timeoutMultiplier = 1000

// TimeoutValue is a timeout split the way timeval-style socket options expect it.
type TimeoutValue struct {
	seconds      int
	microseconds int
}

// NewTimeoutValue returns a TimeoutValue for the given amount of milliseconds.
func NewTimeoutValue(milliseconds int) (TimeoutValue, error) {
	var tv TimeoutValue
	err := tv.SetByMilliseconds(milliseconds)
	return tv, err
}

// SetByMilliseconds sets the timeout. Negative values are rejected and leave the timeout unchanged.
func (t *TimeoutValue) SetByMilliseconds(milliseconds int) error {
	if milliseconds < 0 {
		return ErrNegativeTimeout
	}

	t.seconds = milliseconds / timeoutMultiplier
	t.microseconds = (milliseconds % timeoutMultiplier) * timeoutMultiplier
	return nil
}

// InMilliseconds returns the timeout in milliseconds.
func (t TimeoutValue) InMilliseconds() int {
	return t.seconds*timeoutMultiplier + t.microseconds/timeoutMultiplier
}

func (t TimeoutValue) Seconds() int {
	return t.seconds
}

func (t TimeoutValue) Microseconds() int {
	return t.microseconds
}

// IsZero returns whether the timeout is zero, which sockets read as "no timeout".
func (t TimeoutValue) IsZero() bool {
	return t.seconds == 0 && t.microseconds == 0
}

// Duration returns the timeout as a time.Duration.
func (t TimeoutValue) Duration() time.Duration {
	return time.Duration(t.seconds)*time.Second + time.Duration(t.microseconds)*time.Microsecond
}

// TimeoutFromTimeval builds a TimeoutValue from an OS timeval, normalizing an overflowing microsecond part.
func TimeoutFromTimeval(sec, usec int64) TimeoutValue {
	sec += usec / (timeoutMultiplier * timeoutMultiplier)
	usec %= timeoutMultiplier * timeoutMultiplier
	return TimeoutValue{seconds: int(sec), microseconds: int(usec)}
}
