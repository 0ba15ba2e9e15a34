package deck

import (
	"fmt"
	"time"
)

var frDays = [...]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

var frMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatLongDate renders a date in French long form,
// e.g. "mercredi 25 décembre 2024".
func FormatLongDate(d time.Time) string {
	return fmt.Sprintf("%s %d %s %d",
		frDays[d.Weekday()], d.Day(), frMonths[d.Month()-1], d.Year())
}
