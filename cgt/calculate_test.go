package cgt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LateGenXer/cgtcalc/date"
)

func TestCalculateBuyThenPartialSell(t *testing.T) {
	rq := require.New(t)

	result := calcString(t, `
BUY 01/06/2020 FOO 100 10 0
SELL 15/06/2020 FOO 50 12 0
`, DefaultOptions())
	rq.Empty(result.Warnings)

	tyr := result.TaxYears[TaxYear{2020, 2021}]
	rq.NotNil(tyr)
	rq.Len(tyr.Disposals, 1)
	d := tyr.Disposals[0]
	rqDecEq(t, "600", d.Proceeds)
	rqDecEq(t, "500", d.Costs)
	rqDecEq(t, "100", d.Gain)

	updates := result.Section104["FOO"]
	rq.NotEmpty(updates)
	last := updates[len(updates)-1]
	rqDecEq(t, "50", last.PoolShares)
	rqDecEq(t, "500", last.PoolCost)
}

func TestCalculateBedAndBreakfast(t *testing.T) {
	rq := require.New(t)

	result := calcString(t, `
BUY 01/06/2020 FOO 100 10 0
SELL 01/07/2020 FOO 100 12 0
BUY 20/07/2020 FOO 100 9 0
`, DefaultOptions())

	tyr := result.TaxYears[TaxYear{2020, 2021}]
	rq.Len(tyr.Disposals, 1)
	d := tyr.Disposals[0]
	// Matched against the 20 July repurchase at £9, not the pool at £10.
	rqDecEq(t, "1200", d.Proceeds)
	rqDecEq(t, "900", d.Costs)
	rqDecEq(t, "300", d.Gain)

	// The 1 June parcel stays in the pool untouched; the fully matched
	// repurchase never reaches it.
	updates := result.Section104["FOO"]
	rq.Len(updates, 1)
	rqDecEq(t, "100", updates[0].PoolShares)
	rqDecEq(t, "1000", updates[0].PoolCost)
}

func TestCalculateDividend(t *testing.T) {
	rq := require.New(t)

	result := calcString(t, `
BUY 01/01/2021 BAR 1000 5 0
DIVIDEND 01/03/2021 BAR 1000 50
`, DefaultOptions())
	rq.Empty(result.Warnings)

	updates := result.Section104["BAR"]
	rq.Len(updates, 2)
	rqDecEq(t, "50", updates[1].DeltaCost)
	rqDecEq(t, "1000", updates[1].PoolShares)
	rqDecEq(t, "5050", updates[1].PoolCost)
}

func TestCalculateAllowance(t *testing.T) {
	rq := require.New(t)

	result := calcString(t, `
BUY 01/05/2024 FOO 100 100 0
SELL 01/07/2024 FOO 100 200 0
BUY 01/05/2030 BAR 100 100 0
SELL 01/07/2030 BAR 100 200 0
`, DefaultOptions())

	tyr := result.TaxYears[TaxYear{2024, 2025}]
	rqDecEq(t, "10000", tyr.Gains)
	rqDecEq(t, "3000", tyr.Allowance)
	rqDecEq(t, "7000", tyr.TaxableGain)

	// No allowance table entry that far out: zero allowance, full gain
	// taxable, plus a warning.
	tyr = result.TaxYears[TaxYear{2030, 2031}]
	rqDecEq(t, "10000", tyr.Gains)
	rqDecEq(t, "0", tyr.Allowance)
	rqDecEq(t, "10000", tyr.TaxableGain)
	rq.Len(result.Warnings, 1)
	rq.Contains(result.Warnings[0], "2030/2031")
}

func TestCalculateRoundingModes(t *testing.T) {
	input := `
BUY 01/06/2020 FOO 100 10.005 0
SELL 15/07/2020 FOO 100 12.005 0
`
	// Whole pounds: cost rounds up to 1001, proceeds down to 1200.
	result := calcString(t, input, Options{Rounding: true})
	d := result.TaxYears[TaxYear{2020, 2021}].Disposals[0]
	rqDecEq(t, "1200", d.Proceeds)
	rqDecEq(t, "1001", d.Costs)
	rqDecEq(t, "199", d.Gain)

	// Penny precision keeps the exact figures.
	result = calcString(t, input, Options{Rounding: false})
	d = result.TaxYears[TaxYear{2020, 2021}].Disposals[0]
	rqDecEq(t, "1200.5", d.Proceeds)
	rqDecEq(t, "1000.5", d.Costs)
	rqDecEq(t, "200", d.Gain)
}

func TestCalculateMergesSameDayTrades(t *testing.T) {
	rq := require.New(t)

	result := calcString(t, `
BUY 01/06/2020 FOO 60 10 1
BUY 01/06/2020 FOO 40 15 1
SELL 15/07/2020 FOO 100 13 0
`, DefaultOptions())

	tyr := result.TaxYears[TaxYear{2020, 2021}]
	rq.Len(tyr.Disposals, 1)
	d := tyr.Disposals[0]
	rqDecEq(t, "1300", d.Proceeds)
	rqDecEq(t, "1202", d.Costs)
	rqDecEq(t, "98", d.Gain)
}

func TestCalculateMultipleSecurities(t *testing.T) {
	rq := require.New(t)

	result := calcString(t, `
BUY 01/06/2020 ZZZ 10 10 0
BUY 01/06/2020 AAA 10 10 0
BUY 01/06/2020 MMM 10 10 0
`, DefaultOptions())

	rq.Equal([]string{"AAA", "MMM", "ZZZ"}, result.SecuritiesSorted())
	rq.Empty(result.TaxYears)
}

func TestCalculateProvisionalWarning(t *testing.T) {
	rq := require.New(t)

	saved := date.TodaysDateForTest
	date.TodaysDateForTest = mkDate(2024, time.June, 15)
	defer func() { date.TodaysDateForTest = saved }()

	result := calcString(t, `
BUY 01/05/2024 FOO 100 10 0
SELL 01/06/2024 FOO 50 12 0
`, DefaultOptions())

	rq.Len(result.Warnings, 1)
	rq.Contains(result.Warnings[0], "provisional")
}

func TestCalculateErrorsPropagate(t *testing.T) {
	err := calcStringErr(t, `
BUY 01/06/2020 FOO 10 10 0
SELL 15/06/2020 FOO 20 12 0
`, DefaultOptions())
	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
}
