// Package window は提出受付期間の状態（開始前・受付中・終了後）を判定します。
package window

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Phase は提出受付期間の状態です。
type Phase int

const (
	Before Phase = iota // 受付開始前
	Open                // 受付中
	After               // 受付終了後
)

func (p Phase) String() string {
	switch p {
	case Before:
		return "before"
	case Open:
		return "open"
	case After:
		return "after"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "before":
		*p = Before
	case "open":
		*p = Open
	case "after":
		*p = After
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Classify は now を [start, end] と比較して状態を返します。境界は受付中に含まれます。
func Classify(now, start, end time.Time) Phase {
	if now.Before(start) {
		return Before
	}
	if now.After(end) {
		return After
	}
	return Open
}

// Describe returns the human readable status line shown next to an event.
func Describe(now, start, end time.Time) string {
	switch Classify(now, start, end) {
	case Before:
		return "Submissions open " + humanize.RelTime(start, now, "ago", "from now")
	case After:
		return "Submissions are closed"
	}
	return "Submissions close " + humanize.RelTime(end, now, "ago", "from now")
}
