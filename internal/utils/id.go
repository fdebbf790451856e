package utils

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a globally unique message identifier.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		// Fallback to timestamp if the random source is unavailable.
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return id.String()
}

// NowMillis returns the current time as unix milliseconds.
// All timestamps on the wire and in the stores use this resolution.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
