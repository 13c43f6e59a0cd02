package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vanschouwen/streakline/internal/contrib"
)

// Dates serialize as plain calendar strings so they round-trip exactly
// with no timezone drift. Unknown fields in stored records are ignored
// and missing optional fields default, so schema changes in either
// direction never hard-fail a decode.
const dateLayout = "2006-01-02"

type snapshotRecord struct {
	Username           string      `json:"username"`
	TotalContributions int         `json:"total_contributions"`
	TotalIsExplicit    bool        `json:"total_is_explicit,omitempty"`
	FetchedAt          time.Time   `json:"fetched_at"`
	Days               []dayRecord `json:"days"`
}

type dayRecord struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func encodeSnapshot(snap *contrib.Snapshot) ([]byte, error) {
	rec := snapshotRecord{
		Username:           snap.Username,
		TotalContributions: snap.TotalContributions,
		TotalIsExplicit:    snap.TotalIsExplicit,
		FetchedAt:          snap.FetchedAt.UTC(),
		Days:               make([]dayRecord, len(snap.Days)),
	}
	for i, d := range snap.Days {
		rec.Days[i] = dayRecord{Date: d.Date.Format(dateLayout), Count: d.Count}
	}
	return json.Marshal(rec)
}

func decodeSnapshot(data []byte) (*contrib.Snapshot, error) {
	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot record: %w", err)
	}

	snap := &contrib.Snapshot{
		Username:           rec.Username,
		TotalContributions: rec.TotalContributions,
		TotalIsExplicit:    rec.TotalIsExplicit,
		FetchedAt:          rec.FetchedAt,
		Days:               make([]contrib.Day, 0, len(rec.Days)),
	}
	for _, d := range rec.Days {
		date, err := time.ParseInLocation(dateLayout, d.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to decode day date %q: %w", d.Date, err)
		}
		snap.Days = append(snap.Days, contrib.Day{Date: date, Count: d.Count})
	}
	return snap, nil
}
