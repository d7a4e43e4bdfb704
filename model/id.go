package model

import (
	"strconv"
	"time"
)

// FormatID returns the post id for t: its Unix time in milliseconds. Two posts
// stamped within the same millisecond share an id.
func FormatID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
