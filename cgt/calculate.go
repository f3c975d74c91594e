package cgt

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/LateGenXer/cgtcalc/date"
	"github.com/LateGenXer/cgtcalc/log"
	"github.com/LateGenXer/cgtcalc/util"
)

// Options configures a calculation.
type Options struct {
	// Rounding selects whole-pound rounding of costs and proceeds (the
	// HMRC default). When false, values are rounded to the penny instead.
	Rounding bool
}

func DefaultOptions() Options {
	return Options{Rounding: true}
}

func (o Options) places() int32 {
	return util.Tern[int32](o.Rounding, 0, 2)
}

// secOutcome is the output of one per-security pipeline, merged into the
// shared Result on the calling goroutine.
type secOutcome struct {
	security  string
	updates   []PoolUpdate
	disposals []*DisposalResult
	warnings  []string
	err       error
}

// Calculate runs the full pipeline over trades from any number of
// securities and returns a finalized Result. Each security is fully
// independent, so the per-security pipelines run on their own goroutines;
// the merge is serialized and walks securities in name order so the output
// is deterministic.
func Calculate(trades []*Trade, options Options) (*Result, error) {
	bySecurity := splitTradesBySecurity(trades)
	securities := maps.Keys(bySecurity)
	slices.Sort(securities)

	outcomes := make([]secOutcome, len(securities))
	var wg sync.WaitGroup
	for i, security := range securities {
		wg.Add(1)
		go func(i int, security string) {
			defer wg.Done()
			outcomes[i] = processSecurity(security, bySecurity[security], options)
		}(i, security)
	}
	wg.Wait()

	today := date.Today()
	result := NewResult()
	for _, outcome := range outcomes {
		if outcome.err != nil {
			return nil, outcome.err
		}
		for _, warning := range outcome.warnings {
			result.AddWarning(warning)
		}
		if len(outcome.updates) > 0 {
			result.Section104[outcome.security] = outcome.updates
		}
		for _, disposal := range outcome.disposals {
			result.AddDisposal(disposal)
			// A future acquisition could still be matched under bed &
			// breakfast, so recent figures are not yet settled.
			if today.DaysSince(disposal.Date) <= bedAndBreakfastDays {
				result.AddWarning(fmt.Sprintf(
					"Disposal of %s on %s is provisional: acquisitions within 30 days may still change its matching",
					disposal.Security, disposal.Date))
			}
		}
	}
	result.Finalize()
	return result, nil
}

func splitTradesBySecurity(trades []*Trade) map[string][]*Trade {
	bySecurity := util.NewDefaultMap(func(string) []*Trade { return nil })
	for _, trade := range trades {
		bySecurity.Set(trade.Security, append(bySecurity.Get(trade.Security), trade))
	}
	return bySecurity.EjectMap()
}

func processSecurity(security string, trades []*Trade, options Options) secOutcome {
	log.Verbosef("Processing %d trades for %s\n", len(trades), security)
	ledger, err := newSecurityLedger(security, trades, options.places())
	if err != nil {
		return secOutcome{security: security, err: err}
	}
	ledger.matchSameDay()
	ledger.matchBedAndBreakfast()
	updates, disposals, warnings, err := ledger.processPool(options.places())
	return secOutcome{
		security:  security,
		updates:   updates,
		disposals: disposals,
		warnings:  warnings,
		err:       err,
	}
}

// sortTrades stable-sorts by (date, kind); the Kind declaration order is
// the same-date tie break.
func sortTrades(trades []*Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if !trades[i].Date.Equal(trades[j].Date) {
			return trades[i].Date.Before(trades[j].Date)
		}
		return trades[i].Kind < trades[j].Kind
	})
}

// mergeTrades folds consecutive BUY (or SELL) trades with the same date
// into one: shares add, price becomes the share-weighted average, and
// charges add. HMRC nets same-day trades before any identification.
func mergeTrades(trades []*Trade) []*Trade {
	merged := make([]*Trade, 0, len(trades))
	for _, trade := range trades {
		if len(merged) > 0 {
			last := merged[len(merged)-1]
			if last.Date.Equal(trade.Date) && last.Kind == trade.Kind &&
				(trade.Kind == BUY || trade.Kind == SELL) {
				shares := last.Params[0].Add(trade.Params[0])
				amount := last.Params[0].Mul(last.Params[1]).Add(trade.Params[0].Mul(trade.Params[1]))
				merged[len(merged)-1] = &Trade{
					Security: trade.Security,
					Date:     trade.Date,
					Kind:     trade.Kind,
					Params: []decimal.Decimal{
						shares,
						amount.Div(shares),
						last.Params[2].Add(trade.Params[2]),
					},
				}
				continue
			}
		}
		merged = append(merged, trade)
	}
	return merged
}

// newSecurityLedger sorts and merges one security's trades and derives the
// per-date acquisition and disposal records, applying the rounding policy:
// unit-price products are normalised to 2 decimals half-even, then costs
// and charges round up and proceeds round down at the configured places.
func newSecurityLedger(security string, trades []*Trade, places int32) (*SecurityLedger, error) {
	sorted := make([]*Trade, len(trades))
	copy(sorted, trades)
	sortTrades(sorted)
	merged := mergeTrades(sorted)

	ledger := &SecurityLedger{
		Security:     security,
		Trades:       merged,
		Acquisitions: make(map[date.Date]*Acquisition),
		Disposals:    make(map[date.Date]*Disposal),
	}

	for _, trade := range merged {
		switch trade.Kind {
		case BUY:
			shares, price, charges := trade.Params[0], trade.Params[1], trade.Params[2]
			cost := DRound(shares.Mul(price), 2, HalfEven).Add(charges)
			cost = DRound(cost, places, Ceiling)
			_, dup := ledger.Acquisitions[trade.Date]
			util.Assertf(!dup, "%s: duplicate acquisition on %s after merging\n", security, trade.Date)
			ledger.Acquisitions[trade.Date] = &Acquisition{
				Date:         trade.Date,
				Cost:         cost,
				Shares:       shares,
				Unidentified: shares,
			}
			ledger.acquisitionDates = append(ledger.acquisitionDates, trade.Date)
		case SELL:
			shares, price, charges := trade.Params[0], trade.Params[1], trade.Params[2]
			proceeds := DRound(DRound(shares.Mul(price), 2, HalfEven), places, Floor)
			charges = DRound(charges, places, Ceiling)
			_, dup := ledger.Disposals[trade.Date]
			util.Assertf(!dup, "%s: duplicate disposal on %s after merging\n", security, trade.Date)
			ledger.Disposals[trade.Date] = &Disposal{
				Date:         trade.Date,
				Proceeds:     proceeds,
				Charges:      charges,
				Shares:       shares,
				Unidentified: shares,
			}
			ledger.disposalDates = append(ledger.disposalDates, trade.Date)
		}
	}
	return ledger, nil
}
