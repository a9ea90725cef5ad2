// Package expiry classifies ticket due dates for badge display and
// notification decisions.
package expiry

import (
	"fmt"
	"time"
)

// Status is the severity bucket of an approaching expiry date
type Status string

const (
	StatusSafe    Status = "safe"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
	StatusOverdue Status = "overdue"
)

// Info describes how close a ticket is to its expiry date
type Info struct {
	Status Status `json:"status"`
	// DaysLeft is the whole-day difference between the expiry date and
	// now, both normalized to midnight. Negative when overdue.
	DaysLeft int    `json:"days_left"`
	Label    string `json:"label"`
}

// Notify reports whether the status warrants a notification
func (i Info) Notify() bool {
	return i.Status != StatusSafe
}

// Evaluate classifies an expiry date relative to now. daysBefore is the
// user's notification lead: dates further out than daysBefore days are
// safe. Day boundaries are midnight in now's location.
func Evaluate(expiryDate, now time.Time, daysBefore int) Info {
	d := daysUntil(expiryDate, now)

	switch {
	case d < 0:
		return Info{Status: StatusOverdue, DaysLeft: d, Label: "Overdue"}
	case d == 0:
		return Info{Status: StatusDanger, DaysLeft: 0, Label: "Due today"}
	case d == 1:
		return Info{Status: StatusDanger, DaysLeft: 1, Label: "1 day left"}
	case d <= daysBefore:
		return Info{Status: StatusWarning, DaysLeft: d, Label: fmt.Sprintf("%d days left", d)}
	default:
		return Info{Status: StatusSafe, DaysLeft: d, Label: ""}
	}
}

// daysUntil returns the calendar-day distance from now to target,
// normalizing both to midnight so partial days never shift the bucket
func daysUntil(target, now time.Time) int {
	loc := now.Location()
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, loc)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return int(targetDay.Sub(nowDay).Hours() / 24)
}
