// Package availability は参加可能時間（1時間単位の枠）の圧縮表示とスケジュール枠の生成を行います。
package availability

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Segment は同じ日付で連続する時間帯です。EndHour は排他的です。
type Segment struct {
	Date      string
	StartHour int
	EndHour   int
}

func (s Segment) String() string {
	end := fmt.Sprintf("%d:00", s.EndHour)
	if s.EndHour == 23 {
		end = "23:59"
	}
	return fmt.Sprintf("%s %d:00-%s", s.Date, s.StartHour, end)
}

// DateLabel は "Mar 5th" 形式の日付ラベルを返します。
func DateLabel(t time.Time) string {
	return t.Format("Jan") + " " + humanize.Ordinal(t.Day())
}

// Segments は枠を昇順に並べて重複を除き、連続する枠を1つの区間にまとめます。
func Segments(slots []time.Time, loc *time.Location) []Segment {
	if len(slots) == 0 {
		return nil
	}
	sorted := append([]time.Time(nil), slots...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var segments []Segment
	for i, slot := range sorted {
		if i > 0 && slot.Equal(sorted[i-1]) {
			continue
		}
		local := slot.In(loc)
		date, hour := DateLabel(local), local.Hour()

		if n := len(segments); n > 0 && segments[n-1].Date == date && segments[n-1].EndHour == hour {
			segments[n-1].EndHour = hour + 1
			continue
		}
		segments = append(segments, Segment{Date: date, StartHour: hour, EndHour: hour + 1})
	}
	return segments
}

// Compress は参加可能時間を "Mar 5th 9:00-12:00, Mar 6th 13:00-14:00" のような文字列にします。
func Compress(slots []time.Time, loc *time.Location) string {
	segments := Segments(slots, loc)
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
