package cgt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LateGenXer/cgtcalc/date"
)

// TaxYear is a UK fiscal year, 6 April of Year1 to 5 April of Year2.
type TaxYear struct {
	Year1 int
	Year2 int
}

// TaxYearOf returns the tax year containing d.
func TaxYearOf(d date.Date) TaxYear {
	year, month, day := d.Parts()
	if month > time.April || (month == time.April && day >= 6) {
		return TaxYear{year, year + 1}
	}
	return TaxYear{year - 1, year}
}

// ParseTaxYear parses the YYYY/YYYY form, e.g. "2024/2025".
func ParseTaxYear(s string) (TaxYear, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return TaxYear{}, fmt.Errorf("invalid tax year %q: expected e.g. 2024/2025", s)
	}
	year1, err1 := strconv.Atoi(parts[0])
	year2, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || year2 != year1+1 {
		return TaxYear{}, fmt.Errorf("invalid tax year %q: expected e.g. 2024/2025", s)
	}
	return TaxYear{year1, year2}, nil
}

func (ty TaxYear) String() string {
	return fmt.Sprintf("%d/%d", ty.Year1, ty.Year2)
}

// Start returns 6 April of Year1.
func (ty TaxYear) Start() date.Date {
	return date.New(uint32(ty.Year1), time.April, 6)
}

// End returns 5 April of Year2.
func (ty TaxYear) End() date.Date {
	return date.New(uint32(ty.Year2), time.April, 5)
}

func (ty TaxYear) Before(other TaxYear) bool {
	return ty.Year1 < other.Year1
}

// Annual exempt amounts by TaxYear.Year2.
// https://www.gov.uk/guidance/capital-gains-tax-rates-and-allowances
var allowances = map[int]int64{
	2009: 9600,
	2010: 10100,
	2011: 10100,
	2012: 10600,
	2013: 10600,
	2014: 10900,
	2015: 11000,
	2016: 11100,
	2017: 11100,
	2018: 11300,
	2019: 11700,
	2020: 12000,
	2021: 12300,
	2022: 12300,
	2023: 12300,
	2024: 6000,
	2025: 3000,
	2026: 3000,
}

// AllowanceFor returns the capital gains allowance for a tax year, and
// whether the year is in the table at all.
func AllowanceFor(ty TaxYear) (decimal.Decimal, bool) {
	allowance, ok := allowances[ty.Year2]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(allowance), true
}
