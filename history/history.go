// Package history persists local cost history for claude-line.
//
// Records are kept in a single JSON file under the XDG data directory:
//
//	~/.local/share/claude-line/history.json
//
// Writes are atomic (temp file + rename) so a status line invocation that
// races a previous one never observes a torn file. A corrupted file is
// discarded and rebuilt rather than surfaced as an error; the status line
// must keep rendering even when history is unusable.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// eventRetention bounds how far back cost events are kept. Queries only
// ever look at the current week, so 30 days leaves ample slack.
const eventRetention = 30 * 24 * time.Hour

// SessionRecord is the aggregate for one Claude Code session.
type SessionRecord struct {
	ID           string     `json:"id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Model        string     `json:"model"`
	TotalCost    float64    `json:"total_cost"`
	TokensInput  uint64     `json:"tokens_input"`
	TokensOutput uint64     `json:"tokens_output"`
	TokensCached uint64     `json:"tokens_cached"`
}

// CostEvent is a single cost increment within a session.
type CostEvent struct {
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Cost      float64   `json:"cost"`
}

type fileData struct {
	Sessions map[string]SessionRecord `json:"sessions"`
	Events   []CostEvent              `json:"events"`
}

// Tracker reads and writes the local cost history file.
type Tracker struct {
	path   string
	logger *slog.Logger
	data   fileData
}

// DefaultDir returns the history directory, honoring XDG_DATA_HOME.
func DefaultDir() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, "claude-line")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "claude-line")
}

// Open loads (or creates) the history file in dir. A nil logger discards
// diagnostics.
func Open(dir string, logger *slog.Logger) (*Tracker, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("history: create directory %s: %w", dir, err)
	}

	t := &Tracker{
		path:   filepath.Join(dir, "history.json"),
		logger: logger,
		data:   fileData{Sessions: make(map[string]SessionRecord)},
	}

	raw, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("history: read %s: %w", t.path, err)
	}

	if err := json.Unmarshal(raw, &t.data); err != nil {
		logger.Warn("history: discarding corrupted file", slog.String("error", err.Error()))
		t.data = fileData{Sessions: make(map[string]SessionRecord)}
	}
	if t.data.Sessions == nil {
		t.data.Sessions = make(map[string]SessionRecord)
	}
	return t, nil
}

// UpsertSession inserts or replaces a session record and saves.
func (t *Tracker) UpsertSession(rec SessionRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("history: session record has no id")
	}
	t.data.Sessions[rec.ID] = rec
	return t.save()
}

// AppendEvent records a cost event and saves.
func (t *Tracker) AppendEvent(ev CostEvent) error {
	if ev.SessionID == "" {
		return fmt.Errorf("history: cost event has no session id")
	}
	t.data.Events = append(t.data.Events, ev)
	return t.save()
}

// Session returns the record for a session id, if present.
func (t *Tracker) Session(id string) (SessionRecord, bool) {
	rec, ok := t.data.Sessions[id]
	return rec, ok
}

// SessionStart returns the start time recorded for a session id.
func (t *Tracker) SessionStart(id string) (time.Time, bool) {
	rec, ok := t.data.Sessions[id]
	if !ok {
		return time.Time{}, false
	}
	return rec.StartTime, true
}

// TotalCostSince sums event cost at or after the given time.
func (t *Tracker) TotalCostSince(since time.Time) float64 {
	var total float64
	for _, ev := range t.data.Events {
		if !ev.Timestamp.Before(since) {
			total += ev.Cost
		}
	}
	return total
}

// SessionCostRange sums session total cost for sessions starting in
// [from, to).
func (t *Tracker) SessionCostRange(from, to time.Time) float64 {
	var total float64
	for _, rec := range t.data.Sessions {
		if !rec.StartTime.Before(from) && rec.StartTime.Before(to) {
			total += rec.TotalCost
		}
	}
	return total
}

// SessionCount counts sessions starting in [from, to).
func (t *Tracker) SessionCount(from, to time.Time) int {
	n := 0
	for _, rec := range t.data.Sessions {
		if !rec.StartTime.Before(from) && rec.StartTime.Before(to) {
			n++
		}
	}
	return n
}

// TopSessions returns up to limit sessions starting in [from, to),
// ordered by total cost descending.
func (t *Tracker) TopSessions(from, to time.Time, limit int) []SessionRecord {
	var out []SessionRecord
	for _, rec := range t.data.Sessions {
		if !rec.StartTime.Before(from) && rec.StartTime.Before(to) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCost != out[j].TotalCost {
			return out[i].TotalCost > out[j].TotalCost
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// WeekStart returns Monday 00:00 UTC of the week containing now. The
// weekly cost-warning budget resets at this boundary.
func WeekStart(now time.Time) time.Time {
	now = now.UTC()
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -daysSinceMonday)
}

// save prunes stale events and writes the file atomically.
func (t *Tracker) save() error {
	cutoff := time.Now().Add(-eventRetention)
	kept := t.data.Events[:0]
	for _, ev := range t.data.Events {
		if ev.Timestamp.After(cutoff) {
			kept = append(kept, ev)
		}
	}
	t.data.Events = kept

	encoded, err := json.MarshalIndent(&t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("history: marshal: %w", err)
	}

	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, ".tmp-history-*.json")
	if err != nil {
		return fmt.Errorf("history: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("history: chmod temp: %w", err)
	}
	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("history: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("history: close temp: %w", err)
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		return fmt.Errorf("history: rename temp: %w", err)
	}

	success = true
	return nil
}
