// Package render draws a contribution snapshot as an SVG card.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"github.com/vanschouwen/streakline/internal/contrib"
)

const (
	cellSize = 11
	cellGap  = 3
	marginX  = 20
	marginY  = 64
	footerH  = 28
)

//go:embed templates/card.svg.tmpl
var cardTemplate string

var cardTmpl = template.Must(template.New("card").Parse(cardTemplate))

// levelColors follow the familiar green calendar ramp.
var levelColors = map[contrib.Level]string{
	contrib.LevelNone:     "#ebedf0",
	contrib.LevelLow:      "#9be9a8",
	contrib.LevelMedium:   "#40c463",
	contrib.LevelHigh:     "#30a14e",
	contrib.LevelVeryHigh: "#216e39",
}

type cellViewModel struct {
	X     int
	Y     int
	Size  int
	Color string
	Title string
}

type cardViewModel struct {
	Width         int
	Height        int
	Username      string
	Total         int
	CurrentStreak int
	LongestStreak int
	Cells         []cellViewModel
}

// SVG renders the full-year grid colored by relative intensity, so the
// ramp self-scales to the user's own activity range.
func SVG(snap *contrib.Snapshot, now time.Time) ([]byte, error) {
	weeks := snap.Weeks()
	max := snap.MaxCount()

	var cells []cellViewModel
	for col, week := range weeks {
		for _, day := range week {
			row := int(day.Date.Weekday())
			cells = append(cells, cellViewModel{
				X:     marginX + col*(cellSize+cellGap),
				Y:     marginY + row*(cellSize+cellGap),
				Size:  cellSize,
				Color: levelColors[contrib.RelativeLevel(day.Count, max)],
				Title: fmt.Sprintf("%s: %d", day.Date.Format("2006-01-02"), day.Count),
			})
		}
	}

	width := marginX*2 + len(weeks)*(cellSize+cellGap) - cellGap
	if len(weeks) == 0 {
		width = marginX * 2
	}
	height := marginY + 7*(cellSize+cellGap) - cellGap + footerH

	vm := cardViewModel{
		Width:         width,
		Height:        height,
		Username:      snap.Username,
		Total:         snap.TotalContributions,
		CurrentStreak: snap.CurrentStreak(now),
		LongestStreak: snap.LongestStreak(),
		Cells:         cells,
	}

	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), nil
}
