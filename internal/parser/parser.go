// Package parser extracts daily contribution counts from the public
// contributions HTML page. The page has no format contract: the date
// and the count for a day live in physically separate fragments joined
// only by an internal cell identifier, so extraction is a join over
// several independent scans rather than a single pass. Fixture pages
// are versioned next to the code under testdata/.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vanschouwen/streakline/internal/contrib"
)

// ErrUnparseable means no daily observations could be extracted after
// all fallback passes. An empty page is treated as unreadable, never
// as zero activity.
var ErrUnparseable = errors.New("no contribution data found in document")

// Result is the outcome of one parse.
type Result struct {
	Days []contrib.Day
	// Total is the page-level total when the page states one, else the
	// sum of the parsed daily counts.
	Total int
	// TotalExplicit reports whether Total came from a page-level
	// phrase. A summed total is approximate when counts were estimated
	// from intensity levels.
	TotalExplicit bool
}

// Cell markers carry the date and the cell id; markup drift has swapped
// attribute order before, so both orders are scanned.
var (
	cellDateRe    = regexp.MustCompile(`data-date="(\d{4}-\d{2}-\d{2})"[^>]*?\sid="([^"]+)"`)
	cellDateAltRe = regexp.MustCompile(`\sid="([^"]+)"[^>]*?data-date="(\d{4}-\d{2}-\d{2})"`)

	cellLevelRe    = regexp.MustCompile(`\sid="([^"]+)"[^>]*?data-level="(\d+)"`)
	cellLevelAltRe = regexp.MustCompile(`data-level="(\d+)"[^>]*?\sid="([^"]+)"`)

	countTipRe = regexp.MustCompile(`<tool-tip[^>]*\sfor="([^"]+)"[^>]*>\s*([\d,]+)\s+contributions?\b`)
	zeroTipRe  = regexp.MustCompile(`<tool-tip[^>]*\sfor="([^"]+)"[^>]*>\s*[Nn]o contributions?\b`)

	totalYearRe = regexp.MustCompile(`([\d,]+)\s+contributions?\s+in the last year`)
	totalBareRe = regexp.MustCompile(`>\s*([\d,]+)\s+contributions?\s*<`)
)

// levelCounts approximates a daily count from the coarse 0-4 intensity
// level carried on the cell itself. Used only when no tooltip at all
// could be read; an estimate, not a count.
var levelCounts = map[int]int{0: 0, 1: 2, 2: 5, 3: 8, 4: 12}

type cell struct {
	date     time.Time
	level    int
	hasLevel bool
}

// Parse extracts the daily observations and the reported total from a
// raw contributions page.
func Parse(document string) (Result, error) {
	cells := scanCells(document)

	byDate := make(map[time.Time]int)

	// Count tooltips are the authoritative signal: they carry an
	// explicit human-readable count. First mention of a date wins.
	for _, m := range countTipRe.FindAllStringSubmatch(document, -1) {
		c, ok := cells[m[1]]
		if !ok {
			continue
		}
		n, err := parseNumber(m[2])
		if err != nil {
			continue
		}
		if _, seen := byDate[c.date]; !seen {
			byDate[c.date] = n
		}
	}

	// Zero tooltips only fill gaps; they never overwrite a recorded
	// nonzero observation for the same cell.
	for _, m := range zeroTipRe.FindAllStringSubmatch(document, -1) {
		c, ok := cells[m[1]]
		if !ok {
			continue
		}
		if _, seen := byDate[c.date]; !seen {
			byDate[c.date] = 0
		}
	}

	// Tooltip format gone entirely: estimate counts from the coarse
	// intensity levels on the cells themselves.
	if len(byDate) == 0 {
		for _, c := range cells {
			if !c.hasLevel {
				continue
			}
			if n, ok := levelCounts[c.level]; ok {
				byDate[c.date] = n
			}
		}
	}

	if len(byDate) == 0 {
		return Result{}, ErrUnparseable
	}

	days := make([]contrib.Day, 0, len(byDate))
	sum := 0
	for date, count := range byDate {
		days = append(days, contrib.Day{Date: date, Count: count})
		sum += count
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	res := Result{Days: days, Total: sum}
	if total, ok := scanTotal(document); ok {
		res.Total = total
		res.TotalExplicit = true
	}
	return res, nil
}

// scanCells builds the cell-id to date map that later passes join on.
// A cell id absent from this map is unusable.
func scanCells(document string) map[string]cell {
	cells := make(map[string]cell)

	for _, m := range cellDateRe.FindAllStringSubmatch(document, -1) {
		if date, err := parseDate(m[1]); err == nil {
			cells[m[2]] = cell{date: date}
		}
	}
	for _, m := range cellDateAltRe.FindAllStringSubmatch(document, -1) {
		if _, ok := cells[m[1]]; ok {
			continue
		}
		if date, err := parseDate(m[2]); err == nil {
			cells[m[1]] = cell{date: date}
		}
	}

	attachLevel := func(id, raw string) {
		c, ok := cells[id]
		if !ok || c.hasLevel {
			return
		}
		if lvl, err := strconv.Atoi(raw); err == nil {
			c.level = lvl
			c.hasLevel = true
			cells[id] = c
		}
	}
	for _, m := range cellLevelRe.FindAllStringSubmatch(document, -1) {
		attachLevel(m[1], m[2])
	}
	for _, m := range cellLevelAltRe.FindAllStringSubmatch(document, -1) {
		attachLevel(m[2], m[1])
	}

	return cells
}

// scanTotal looks for an explicit page-level total. When present it
// overrides the sum of the parsed days, even if the two disagree.
func scanTotal(document string) (int, bool) {
	if m := totalYearRe.FindStringSubmatch(document); m != nil {
		if n, err := parseNumber(m[1]); err == nil {
			return n, true
		}
	}
	if m := totalBareRe.FindStringSubmatch(document); m != nil {
		if n, err := parseNumber(m[1]); err == nil {
			return n, true
		}
	}
	return 0, false
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
