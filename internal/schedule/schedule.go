// Package schedule parses human-readable meeting-time strings and decides
// whether two course schedules collide.
package schedule

import (
	"strconv"
	"strings"
)

// meeting is a single parsed entry: a day plus a half-open minute range.
type meeting struct {
	day   string
	start int
	end   int
}

// Conflicts reports whether any meeting of schedule a overlaps any meeting of
// schedule b. Malformed entries are treated as non-conflicting; use
// ConflictsChecked when the caller wants to know about them.
func Conflicts(a, b string) bool {
	conflict, _ := ConflictsChecked(a, b)
	return conflict
}

// ConflictsChecked is Conflicts with the fail-open policy made visible: the
// second return value lists every entry that could not be parsed and was
// therefore skipped.
func ConflictsChecked(a, b string) (bool, []string) {
	var malformed []string

	meetingsA := parseSchedule(a, &malformed)
	meetingsB := parseSchedule(b, &malformed)

	for _, ma := range meetingsA {
		for _, mb := range meetingsB {
			if ma.day == mb.day && ma.start < mb.end && mb.start < ma.end {
				return true, malformed
			}
		}
	}
	return false, malformed
}

// parseSchedule splits a schedule string on commas and semicolons and parses
// each entry, collecting the ones it has to skip.
func parseSchedule(raw string, malformed *[]string) []meeting {
	entries := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})

	meetings := make([]meeting, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		m, ok := parseEntry(entry)
		if !ok {
			*malformed = append(*malformed, entry)
			continue
		}
		meetings = append(meetings, m)
	}
	return meetings
}

// parseEntry parses "<day> <start>-<end>", e.g. "Monday 9:00-12:00".
func parseEntry(entry string) (meeting, bool) {
	parts := strings.Fields(entry)
	if len(parts) != 2 {
		return meeting{}, false
	}

	timeRange := strings.SplitN(parts[1], "-", 2)
	if len(timeRange) != 2 {
		return meeting{}, false
	}

	start, ok := parseMinutes(timeRange[0])
	if !ok {
		return meeting{}, false
	}
	end, ok := parseMinutes(timeRange[1])
	if !ok {
		return meeting{}, false
	}
	if start >= end {
		return meeting{}, false
	}

	return meeting{day: strings.ToLower(parts[0]), start: start, end: end}, true
}

// parseMinutes converts "H", "H:MM" or either with a trailing am/pm marker to
// minutes since midnight. The marker is stripped, not interpreted.
func parseMinutes(raw string) (int, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	raw = strings.TrimSuffix(raw, "am")
	raw = strings.TrimSuffix(raw, "pm")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	hourPart := raw
	minutePart := "0"
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		hourPart = raw[:idx]
		minutePart = raw[idx+1:]
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
