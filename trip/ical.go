package trip

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
)

// WriteICS renders the plan's itinerary as an iCalendar document with one
// all-day event per day, starting at the given date.
func WriteICS(w io.Writer, plan *Plan, start time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//tripweaver//itinerary//CN")

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for i, entry := range plan.PlanDetails.Itinerary {
		event := cal.AddEvent(fmt.Sprintf("day-%d-%d@tripweaver", i+1, plan.CreatedDate.Unix()))
		event.SetCreatedTime(plan.CreatedDate)
		event.SetAllDayStartAt(day.AddDate(0, 0, i))
		event.SetAllDayEndAt(day.AddDate(0, 0, i+1))
		event.SetSummary(fmt.Sprintf("%s 第%d天", plan.Destination, i+1))
		event.SetDescription(entry)
	}

	return cal.SerializeTo(w)
}
