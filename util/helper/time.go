package helper_util

import "time"

// ParseTime parses an RFC3339 timestamp, the only time format the query
// surface accepts.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
