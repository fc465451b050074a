// Package store keeps the process-lifetime collections: the alert log, the
// support points and the user directory.
package store

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/i474232898/arca/internal/alert"
	"github.com/i474232898/arca/internal/geo"
)

var (
	// ErrNotFound is returned when no entity exists for a given id.
	ErrNotFound = errors.New("not found")
)

// HistoryFilter selects the entries returned by AlertLog.History.
type HistoryFilter struct {
	// All returns every entry regardless of City.
	All  bool
	City string
}

// AlertLog is a concurrency-safe, append-only record of issued alerts.
// It holds at most one alert per type tag for the process lifetime: once a
// type has been recorded, later alerts of that type are dropped whatever
// their city, neighborhood or time.
type AlertLog struct {
	mu sync.RWMutex

	entries []alert.Alert
	// key: type tag, value: index into entries
	byTag map[alert.TypeTag]int
}

func NewAlertLog() *AlertLog {
	return &AlertLog{byTag: make(map[alert.TypeTag]int)}
}

// Record appends a to the log. It reports false when a was dropped as a
// duplicate.
func (l *AlertLog) Record(a alert.Alert) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byTag[a.TypeTag]; ok {
		return false
	}
	l.byTag[a.TypeTag] = len(l.entries)
	l.entries = append(l.entries, a)
	return true
}

// Has reports whether an alert with the same type tag is already recorded.
func (l *AlertLog) Has(a alert.Alert) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.byTag[a.TypeTag]
	return ok
}

// Len returns the number of recorded alerts.
func (l *AlertLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// History returns the entries matching f, most recent first. The city match
// is case-insensitive; entries issued in the same minute keep record order.
// A blank or placeholder City matches nothing.
func (l *AlertLog) History(f HistoryFilter) []alert.Alert {
	if !f.All && (strings.TrimSpace(f.City) == "" || strings.EqualFold(f.City, geo.UnidentifiedCity)) {
		return []alert.Alert{}
	}

	l.mu.RLock()
	result := make([]alert.Alert, 0, len(l.entries))
	for _, a := range l.entries {
		if f.All || strings.EqualFold(a.City, f.City) {
			result = append(result, a)
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].IssuedAt.After(result[j].IssuedAt)
	})
	return result
}
