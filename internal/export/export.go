// Package export は提出データをCSV出力用の表に組み立てます。
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"submitserver/internal/availability"
	"submitserver/models"
)

// Layout はCSVの列構成です。
type Layout string

const (
	Normalized Layout = "normalized" // (提出, カテゴリ)ごとに1行
	Wide       Layout = "wide"       // 提出ごとに1行、カテゴリは番号付きの列
)

// ParseLayout は空文字列を Normalized として扱います。
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(s)) {
	case "", Normalized:
		return Normalized, nil
	case Wide:
		return Wide, nil
	}
	return "", fmt.Errorf("unknown export layout %q", s)
}

// Source は1イベント分の出力元データです。Submissions には User と Categories が読み込まれている必要があります。
type Source struct {
	Event        models.Event
	Submissions  []models.GameSubmission
	Availability []models.EventAvailability
}

// Table はヘッダーと行です。
type Table struct {
	Header []string
	Rows   [][]string
}

var submissionHeader = []string{
	"Runner",
	"Pronouns",
	"Show pronouns?",
	"Availability",
	"Game Title",
	"Platform",
	"Description",
	"Primary Genre",
	"Secondary Genre",
	"Technical Notes",
	"Content Warning",
	"Flashing Lights",
}

var categoryHeader = []string{"Category", "URL", "Estimate", "Category Description"}

type keyedRow struct {
	runner string
	cells  []string
}

// Build は layout に従って表を作ります。行は走者名の大文字小文字を区別しない順に安定ソートされます。
func Build(src Source, layout Layout, loc *time.Location) Table {
	slots := make(map[uint][]time.Time, len(src.Availability))
	for _, a := range src.Availability {
		slots[a.UserID] = a.Slots
	}

	width := src.Event.MaxCategoriesPerSubmission
	for _, s := range src.Submissions {
		if len(s.Categories) > width {
			width = len(s.Categories)
		}
	}

	var rows []keyedRow
	for _, s := range src.Submissions {
		runner := s.User.RunnerName()
		base := submissionCells(s, availability.Compress(slots[s.UserID], loc))

		if layout == Wide {
			cells := append([]string(nil), base...)
			for i := 0; i < width; i++ {
				if i < len(s.Categories) {
					c := s.Categories[i]
					cells = append(cells, c.CategoryName, c.VideoURL, NormalizeEstimate(c.Estimate), c.Description)
				} else {
					cells = append(cells, "", "", "", "")
				}
			}
			rows = append(rows, keyedRow{runner: runner, cells: cells})
			continue
		}

		for _, c := range s.Categories {
			cells := append(append([]string(nil), base...), c.CategoryName, c.VideoURL, NormalizeEstimate(c.Estimate), c.Description)
			rows = append(rows, keyedRow{runner: runner, cells: cells})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].runner) < strings.ToLower(rows[j].runner)
	})

	table := Table{Header: header(layout, width), Rows: make([][]string, len(rows))}
	for i, r := range rows {
		table.Rows[i] = r.cells
	}
	return table
}

func header(layout Layout, width int) []string {
	h := append([]string(nil), submissionHeader...)
	if layout != Wide {
		return append(h, categoryHeader...)
	}
	for i := 1; i <= width; i++ {
		h = append(h,
			fmt.Sprintf("category %d name", i),
			fmt.Sprintf("category %d video", i),
			fmt.Sprintf("category %d estimate", i),
			fmt.Sprintf("category %d description", i),
		)
	}
	return h
}

func submissionCells(s models.GameSubmission, avail string) []string {
	var pronouns string
	var showPronouns bool
	if s.User != nil {
		pronouns = deref(s.User.Pronouns)
		showPronouns = s.User.ShowPronouns
	}
	return []string{
		s.User.RunnerName(),
		pronouns,
		strconv.FormatBool(showPronouns),
		avail,
		s.GameTitle,
		s.Platform,
		s.Description,
		s.PrimaryGenre,
		deref(s.SecondaryGenre),
		deref(s.TechnicalNotes),
		deref(s.ContentWarning),
		strconv.FormatBool(s.FlashingLights),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NormalizeEstimate は時間の無い見積もりをゼロ埋めします。
// "5:30" は "05:30"、"30" は "00:30" になり、時間を含む値はそのままです。
func NormalizeEstimate(estimate string) string {
	if estimate == "" {
		return ""
	}
	parts := strings.Split(estimate, ":")
	switch len(parts) {
	case 1:
		return "00:" + pad2(parts[0])
	case 2:
		return pad2(parts[0]) + ":" + parts[1]
	}
	return estimate
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// Write は表をCSVとして書き出します。
func Write(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// Filename はダウンロード時のファイル名です。
func Filename(e models.Event) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, e.EventName)
	if name == "" {
		name = "submissions"
	}
	return name + ".csv"
}
