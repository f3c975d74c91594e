package cgt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaxYearOf(t *testing.T) {
	rq := require.New(t)

	// 5 April is the last day of the old year; 6 April starts the new one.
	rq.Equal(TaxYear{2023, 2024}, TaxYearOf(mkDate(2024, time.April, 5)))
	rq.Equal(TaxYear{2024, 2025}, TaxYearOf(mkDate(2024, time.April, 6)))
	rq.Equal(TaxYear{2023, 2024}, TaxYearOf(mkDate(2024, time.January, 1)))
	rq.Equal(TaxYear{2024, 2025}, TaxYearOf(mkDate(2024, time.December, 31)))
}

func TestParseTaxYear(t *testing.T) {
	rq := require.New(t)

	ty, err := ParseTaxYear("2024/2025")
	rq.NoError(err)
	rq.Equal(TaxYear{2024, 2025}, ty)
	rq.Equal("2024/2025", ty.String())

	for _, s := range []string{"2024", "2024/2026", "2025/2024", "abcd/efgh", "2024/2025/2026"} {
		_, err := ParseTaxYear(s)
		rq.Errorf(err, "input %q", s)
	}
}

func TestTaxYearBounds(t *testing.T) {
	rq := require.New(t)

	ty := TaxYear{2024, 2025}
	rq.Equal(mkDate(2024, time.April, 6), ty.Start())
	rq.Equal(mkDate(2025, time.April, 5), ty.End())

	rq.True(TaxYear{2023, 2024}.Before(ty))
	rq.False(ty.Before(ty))
	rq.False(ty.Before(TaxYear{2023, 2024}))
}

func TestAllowanceFor(t *testing.T) {
	rq := require.New(t)

	allowance, ok := AllowanceFor(TaxYear{2024, 2025})
	rq.True(ok)
	rqDecEq(t, "3000", allowance)

	allowance, ok = AllowanceFor(TaxYear{2020, 2021})
	rq.True(ok)
	rqDecEq(t, "12300", allowance)

	allowance, ok = AllowanceFor(TaxYear{2030, 2031})
	rq.False(ok)
	rqDecEq(t, "0", allowance)
}
