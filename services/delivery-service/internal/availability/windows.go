package availability

import (
	"time"
)

// Window is one of the six fixed two-hour delivery windows.
type Window struct {
	Slug      string `json:"slug"`
	Label     string `json:"label"`
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
}

// FixedWindows covers 09:00 through 21:00 in two-hour steps.
var FixedWindows = []Window{
	{Slug: "09-11", Label: "9 AM - 11 AM", StartHour: 9, EndHour: 11},
	{Slug: "11-13", Label: "11 AM - 1 PM", StartHour: 11, EndHour: 13},
	{Slug: "13-15", Label: "1 PM - 3 PM", StartHour: 13, EndHour: 15},
	{Slug: "15-17", Label: "3 PM - 5 PM", StartHour: 15, EndHour: 17},
	{Slug: "17-19", Label: "5 PM - 7 PM", StartHour: 17, EndHour: 19},
	{Slug: "19-21", Label: "7 PM - 9 PM", StartHour: 19, EndHour: 21},
}

// eligibleWindows returns the fixed windows at least one qualifying vendor
// can serve on weekday wd. On the current day, windows whose start hour has
// already been reached are dropped.
func eligibleWindows(vendors []VendorState, wd time.Weekday, isToday bool, nowHour int) []Window {
	out := make([]Window, 0, len(FixedWindows))
	for _, w := range FixedWindows {
		if isToday && nowHour >= w.StartHour {
			continue
		}
		for _, v := range vendors {
			if v.coversWindow(wd, w) {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

// coversWindow reports whether the vendor's working hours contain the whole
// window. Vendors without hours rows are treated as always open.
func (v VendorState) coversWindow(wd time.Weekday, w Window) bool {
	if !v.HasHours {
		return true
	}
	h, ok := v.Hours[wd]
	if !ok {
		return true
	}
	if h.IsClosed {
		return false
	}
	return h.OpenMinute <= w.StartHour*60 && w.EndHour*60 <= h.CloseMinute
}
