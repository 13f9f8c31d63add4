package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	sessionID = uuid.NewString()
	loadSeq   uint64
)

// SessionID identifies this process in log output.
func SessionID() string { return sessionID }

// NewLoadID returns a unique ticket for one load request.
func NewLoadID() string { return uuid.NewString() }

// NextLoadSeq numbers load requests in the order they were made.
func NextLoadSeq() uint64 {
	return atomic.AddUint64(&loadSeq, 1)
}
