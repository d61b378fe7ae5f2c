package services

import (
	"math"
	"time"

	"cloud.google.com/go/civil"
)

const hoursPerDay = 24 * time.Hour

var sleepReferenceDay = civil.Date{Year: 2000, Month: time.January, Day: 1}

// SleepHours returns the hours between bedtime and wake time, assuming the
// wake time falls on the day after bedtime. The result is folded into
// (0, 24]: identical times give 24, never 0. Rounded to two decimals.
func SleepHours(bedtime civil.Time, wakeTime civil.Time) float64 {
	start := civil.DateTime{Date: sleepReferenceDay, Time: bedtime}.In(time.UTC)
	end := civil.DateTime{Date: sleepReferenceDay.AddDays(1), Time: wakeTime}.In(time.UTC)

	elapsed := end.Sub(start)
	for elapsed > hoursPerDay {
		elapsed -= hoursPerDay
	}
	return RoundHundredths(elapsed.Hours())
}

func RoundHundredths(value float64) float64 {
	return math.Round(value*100) / 100
}
