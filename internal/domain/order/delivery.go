package order

import "time"

// DeliveryWindowSize is how many upcoming eligible days a customer may
// pick from at checkout
const DeliveryWindowSize = 3

// isWeekend reports whether deliveries are skipped on the given weekday.
// The market closes Thursday and Friday.
func isWeekend(d time.Weekday) bool {
	return d == time.Thursday || d == time.Friday
}

// EligibleDeliveryDates returns the next n delivery days after the given
// moment, starting tomorrow and skipping the weekend
func EligibleDeliveryDates(from time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for len(dates) < n {
		day = day.AddDate(0, 0, 1)
		if isWeekend(day.Weekday()) {
			continue
		}
		dates = append(dates, day)
	}
	return dates
}

// IsEligibleDeliveryDate reports whether the date is one of the next
// DeliveryWindowSize eligible days after from
func IsEligibleDeliveryDate(from, date time.Time) bool {
	target := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, from.Location())
	for _, d := range EligibleDeliveryDates(from, DeliveryWindowSize) {
		if d.Equal(target) {
			return true
		}
	}
	return false
}
