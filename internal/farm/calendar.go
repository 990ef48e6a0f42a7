// Package farm provides the per-cell soil and crop model for the
// farmstead simulation: the 8×8 plot grid, soil scalars, the crop
// catalog, and the daily growth rules.
package farm

import "fmt"

// Season constants. One tick is one simulated day; a season lasts
// DaysPerSeason days.
type Season uint8

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

// DaysPerSeason is the calendar length of each season in ticks.
const DaysPerSeason = 28

// String returns a human-readable season name.
func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Fall:
		return "Fall"
	case Winter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the four defined seasons.
func (s Season) Valid() bool {
	return s <= Winter
}

// Date is a point on the simulation calendar.
type Date struct {
	Year   int    `json:"year"`
	Season Season `json:"season"`
	Day    int    `json:"day"`
}

// NewDate returns the first day of year 1.
func NewDate() Date {
	return Date{Year: 1, Season: Spring, Day: 1}
}

// Next returns the date one day later, rolling seasons and years.
func (d Date) Next() Date {
	d.Day++
	if d.Day > DaysPerSeason {
		d.Day = 1
		if d.Season == Winter {
			d.Season = Spring
			d.Year++
		} else {
			d.Season++
		}
	}
	return d
}

// String formats the date as e.g. "Spring Day 12, Year 3".
func (d Date) String() string {
	return fmt.Sprintf("%s Day %d, Year %d", d.Season, d.Day, d.Year)
}
