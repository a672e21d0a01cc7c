package types

import (
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// DateOf collapses t to its calendar date at midnight UTC. Every date that
// reaches the database goes through here so equality and range comparisons
// behave the same on postgres and sqlite.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return DateOf(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

func SameDate(a, b datatypes.Date) bool {
	return time.Time(DateOf(time.Time(a))).Equal(time.Time(DateOf(time.Time(b))))
}
