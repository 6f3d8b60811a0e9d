package matching

import "time"

// Age returns the completed years between dob and today: the year difference,
// minus one when today's (month, day) is before the birthday's.
func Age(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// AgeRange is an inclusive age filter
type AgeRange struct {
	Min int
	Max int
}

// Contains reports whether age lies within the range, bounds included
func (r AgeRange) Contains(age int) bool {
	return r.Min <= age && age <= r.Max
}

// ageOf returns nil when dob is unknown
func ageOf(dob *time.Time, today time.Time) *int {
	if dob == nil {
		return nil
	}
	a := Age(*dob, today)
	return &a
}
