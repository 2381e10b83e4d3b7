package availability

import "time"

// Grid returns the hour slots a member may mark for an event: every hour from
// startHour through endHour inclusive on each of the event's days, counted from
// the calendar date of eventStart in loc. An endHour of 24 is midnight of the
// following day.
func Grid(eventStart time.Time, days, startHour, endHour int, loc *time.Location) []time.Time {
	if days < 1 || endHour < startHour {
		return nil
	}
	local := eventStart.In(loc)
	y, m, d := local.Date()

	slots := make([]time.Time, 0, days*(endHour-startHour+1))
	for day := 0; day < days; day++ {
		for hour := startHour; hour <= endHour; hour++ {
			slots = append(slots, time.Date(y, m, d+day, hour, 0, 0, 0, loc))
		}
	}
	return slots
}

// InGrid は slot がスケジュール枠のいずれかと一致するかを返します。
func InGrid(grid []time.Time, slot time.Time) bool {
	for _, g := range grid {
		if g.Equal(slot) {
			return true
		}
	}
	return false
}
