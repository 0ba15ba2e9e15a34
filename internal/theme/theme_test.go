package theme

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeasonOf(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want Season
	}{
		{"christmas day", date(2024, time.December, 25), SeasonChristmas},
		{"early january", date(2025, time.January, 3), SeasonChristmas},
		{"first advent sunday 2024", date(2024, time.December, 1), SeasonAdvent},
		{"late advent", date(2024, time.December, 24), SeasonAdvent},
		{"ash wednesday 2024", date(2024, time.February, 14), SeasonLent},
		{"holy saturday 2024", date(2024, time.March, 30), SeasonLent},
		{"easter sunday 2024", date(2024, time.March, 31), SeasonEaster},
		{"pentecost 2024", date(2024, time.May, 19), SeasonPentecost},
		{"midsummer", date(2024, time.July, 14), SeasonOrdinary},
		{"late october", date(2024, time.October, 20), SeasonOrdinary},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SeasonOf(tc.date); got != tc.want {
				t.Errorf("SeasonOf(%s) = %s, want %s", tc.date.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}

func TestEasterSunday(t *testing.T) {
	cases := map[int]time.Time{
		2023: date(2023, time.April, 9),
		2024: date(2024, time.March, 31),
		2025: date(2025, time.April, 20),
		2026: date(2026, time.April, 5),
	}
	for year, want := range cases {
		if got := easterSunday(year); !got.Equal(want) {
			t.Errorf("easterSunday(%d) = %s, want %s", year, got.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	d := date(2024, time.December, 25)
	first := Resolve(d)
	for i := 0; i < 10; i++ {
		if got := Resolve(d); got != first {
			t.Fatalf("Resolve not deterministic: %+v != %+v", got, first)
		}
	}
}

func TestResolve_TotalOverFullYear(t *testing.T) {
	d := date(2024, time.January, 1)
	end := date(2025, time.January, 1)
	for d.Before(end) {
		th := Resolve(d)
		if th.Background == "" || th.Text == "" {
			t.Fatalf("Resolve(%s) returned empty theme", d.Format("2006-01-02"))
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestTitleThemeDistinctFromSeasons(t *testing.T) {
	for season, th := range seasonColors {
		if th.Background == TitleTheme.Background {
			t.Errorf("title background collides with season %s", season)
		}
	}
}
