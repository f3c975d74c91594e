package date_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LateGenXer/cgtcalc/date"
)

func TestDate(t *testing.T) {
	rq := require.New(t)

	d1 := date.New(2022, time.January, 2)
	d2, err := date.ParseUk("02/01/2022")
	rq.Nil(err)
	rq.Equal(d1, d2)
	rq.Equal("02/01/2022", d1.String())

	_, err = date.ParseUk("2022-01-02")
	rq.NotNil(err)

	d3 := d1.AddDays(2)
	rq.Equal("04/01/2022", d3.String())

	rq.True(d3.After(d1))
	rq.True(d1.Before(d3))
	rq.False(d1.After(d3))
}

func TestDaysSince(t *testing.T) {
	rq := require.New(t)

	d1 := date.New(2020, time.June, 1)
	rq.Equal(0, d1.DaysSince(d1))
	rq.Equal(30, date.New(2020, time.July, 1).DaysSince(d1))
	rq.Equal(31, date.New(2020, time.July, 2).DaysSince(d1))
	rq.Equal(-30, d1.DaysSince(date.New(2020, time.July, 1)))

	// Across a leap day
	rq.Equal(2, date.New(2020, time.March, 1).DaysSince(date.New(2020, time.February, 28)))
}

func TestParts(t *testing.T) {
	rq := require.New(t)

	year, month, day := date.New(2021, time.April, 5).Parts()
	rq.Equal(2021, year)
	rq.Equal(time.April, month)
	rq.Equal(5, day)
}
