package journal

import (
	"strings"
	"time"
)

// Filter selects entries from a parsed journal.
// Zero values mean "no constraint"; filters combine with AND.
type Filter struct {
	Status     Status    // match this status only
	TaskPrefix string    // task id prefix, e.g. "2." matches 2.1 and 2.3
	Since      time.Time // entries dated on or after (undated entries excluded)
	Until      time.Time // entries dated on or before (undated entries excluded)
	Text       string    // case-insensitive substring over title and summary
	Last       int       // keep only the last N matches in file order
}

// Apply returns the entries matching the filter, preserving file order.
func (f Filter) Apply(entries []*Entry) []*Entry {
	var matched []*Entry
	for _, e := range entries {
		if f.matches(e) {
			matched = append(matched, e)
		}
	}

	if f.Last > 0 && len(matched) > f.Last {
		matched = matched[len(matched)-f.Last:]
	}
	return matched
}

// matches reports whether a single entry passes every constraint.
func (f Filter) matches(e *Entry) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.TaskPrefix != "" && !strings.HasPrefix(e.TaskID, f.TaskPrefix) {
		return false
	}
	if !f.Since.IsZero() && (e.Date.IsZero() || e.Date.Before(f.Since)) {
		return false
	}
	if !f.Until.IsZero() && (e.Date.IsZero() || e.Date.After(f.Until)) {
		return false
	}
	if f.Text != "" && !f.matchesText(e) {
		return false
	}
	return true
}

// matchesText does the case-insensitive substring match.
func (f Filter) matchesText(e *Entry) bool {
	needle := strings.ToLower(f.Text)
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Summary), needle)
}
