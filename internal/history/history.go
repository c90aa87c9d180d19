// Package history keeps a bounded, newest-first log of distinct sensor readings.
package history

import "github.com/HamzaOussama/plantX/internal/sensor"

// DefaultSize is the number of entries retained by the log.
const DefaultSize = 10

// Entry is a recorded snapshot tagged with its creation ordinal.
// Entries are never mutated after creation.
type Entry struct {
	ID uint64
	sensor.Snapshot
}

// Reduce returns the history after considering candidate. If entries is empty
// or candidate differs from the head on any numeric field, a new entry with id
// is prepended and the result truncated to size. Otherwise entries is returned
// unchanged. The input slice is never modified.
func Reduce(entries []Entry, candidate sensor.Snapshot, id uint64, size int) []Entry {
	if size <= 0 {
		size = DefaultSize
	}
	if len(entries) > 0 && entries[0].SameReadings(candidate) {
		return entries
	}

	n := len(entries) + 1
	if n > size {
		n = size
	}
	out := make([]Entry, 0, n)
	out = append(out, Entry{ID: id, Snapshot: candidate})
	out = append(out, entries[:n-1]...)
	return out
}

// Log owns a history sequence and the id counter used to tag new entries.
// It is not safe for concurrent use; the dashboard mutates it from its
// update loop only.
type Log struct {
	size    int
	nextID  uint64
	entries []Entry
}

// NewLog creates an empty log holding at most size entries.
func NewLog(size int) *Log {
	if size <= 0 {
		size = DefaultSize
	}
	return &Log{size: size, nextID: 1}
}

// Record reduces candidate into the log and reports whether an entry was added.
// Ids are consumed only when an entry is created.
func (l *Log) Record(candidate sensor.Snapshot) bool {
	if latest, ok := l.Latest(); ok && latest.SameReadings(candidate) {
		return false
	}
	l.entries = Reduce(l.entries, candidate, l.nextID, l.size)
	l.nextID++
	return true
}

// Entries returns the log newest-first. The returned slice must not be modified.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Latest returns the newest entry, if any.
func (l *Log) Latest() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[0], true
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Size returns the retention cap.
func (l *Log) Size() int {
	return l.size
}

// Series returns the values of field oldest-first, for sparkline rendering.
func (l *Log) Series(field sensor.Field) []float64 {
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]float64, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = field.Value(e.Snapshot)
	}
	return out
}
