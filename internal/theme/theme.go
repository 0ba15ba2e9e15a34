// Package theme resolves a calendar date to the liturgical color theme of
// its season. Resolution is a pure function: same date in, same theme out,
// for every date of every year.
package theme

import "time"

// Season identifies a period of the liturgical year.
type Season string

const (
	SeasonAdvent    Season = "advent"
	SeasonChristmas Season = "christmas"
	SeasonLent      Season = "lent"
	SeasonEaster    Season = "easter"
	SeasonPentecost Season = "pentecost"
	SeasonOrdinary  Season = "ordinary"
)

// Theme is a background/text color pairing for a season.
// Colors are RRGGBB hex without the leading '#', ready for OOXML solidFill.
type Theme struct {
	Season     Season `json:"season"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// seasonColors maps each season to its colors. Violet for the penitential
// seasons, white/gold for the festive ones, red for Pentecost, green
// otherwise.
var seasonColors = map[Season]Theme{
	SeasonAdvent:    {Season: SeasonAdvent, Background: "4B2E83", Text: "FFFFFF"},
	SeasonChristmas: {Season: SeasonChristmas, Background: "FDF6E3", Text: "8A6D1D"},
	SeasonLent:      {Season: SeasonLent, Background: "5B3A8E", Text: "FFFFFF"},
	SeasonEaster:    {Season: SeasonEaster, Background: "FFFBF0", Text: "B8860B"},
	SeasonPentecost: {Season: SeasonPentecost, Background: "9B1B30", Text: "FFFFFF"},
	SeasonOrdinary:  {Season: SeasonOrdinary, Background: "1E5631", Text: "FFFFFF"},
}

// TitleTheme is the fixed theme used for a deck's opening title slide,
// distinct from every seasonal background.
var TitleTheme = Theme{Season: "", Background: "1F3864", Text: "FFFFFF"}

// Resolve returns the theme for the season containing date.
func Resolve(date time.Time) Theme {
	return seasonColors[SeasonOf(date)]
}

// SeasonOf computes the liturgical season containing date.
func SeasonOf(date time.Time) Season {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	year := d.Year()

	easter := easterSunday(year)
	ashWednesday := easter.AddDate(0, 0, -46)
	pentecost := easter.AddDate(0, 0, 49)

	switch {
	case d.Equal(pentecost):
		return SeasonPentecost
	case !d.Before(ashWednesday) && d.Before(easter):
		return SeasonLent
	case !d.Before(easter) && d.Before(pentecost):
		return SeasonEaster
	}

	// Christmas season runs from Dec 25 through the Baptism of the Lord,
	// approximated here as the Sunday after Jan 6.
	if d.Month() == time.December && d.Day() >= 25 {
		return SeasonChristmas
	}
	if d.Month() == time.January && !d.After(baptismOfTheLord(year)) {
		return SeasonChristmas
	}

	if !d.Before(adventStart(year)) && d.Month() == time.December && d.Day() < 25 {
		return SeasonAdvent
	}
	if d.Month() == time.November && !d.Before(adventStart(year)) {
		return SeasonAdvent
	}

	return SeasonOrdinary
}

// easterSunday computes Gregorian Easter using the anonymous computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// adventStart returns the fourth Sunday before Christmas.
func adventStart(year int) time.Time {
	christmas := time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)
	// Sunday on or before Dec 24, then back three more weeks.
	offset := int(christmas.Weekday())
	if offset == 0 {
		offset = 7
	}
	return christmas.AddDate(0, 0, -offset-21)
}

// baptismOfTheLord returns the Sunday after Epiphany (Jan 6).
func baptismOfTheLord(year int) time.Time {
	epiphany := time.Date(year, time.January, 6, 0, 0, 0, 0, time.UTC)
	offset := 7 - int(epiphany.Weekday())
	return epiphany.AddDate(0, 0, offset)
}
