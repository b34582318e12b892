package session

import "time"

// Generous bounds for Eventually-style assertions so slow CI does not flake.
const (
	flakeTimeout = 5 * time.Second
	flakePoll    = 5 * time.Millisecond
)
