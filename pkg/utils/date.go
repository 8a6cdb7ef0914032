package utils

import (
	"time"
)

// LoadLocation resolves an IANA zone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PrettyDate formats t as "Mon, 02 Jan 2006 15:04".
func PrettyDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04")
}
