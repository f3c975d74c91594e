package cgt

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/LateGenXer/cgtcalc/util"

	decimal_opt "github.com/LateGenXer/cgtcalc/decimal_value"
)

// A declared DIVIDEND/CAPRETURN holding further than this from the derived
// holding produces a warning.
var holdingTolerance = decimal.RequireFromString("0.01")

// pool is the single running Section 104 total for one security.
type pool struct {
	Shares decimal.Decimal
	Cost   decimal.Decimal
}

// processPool performs the chronological walk over the security's merged
// trades: unmatched acquisitions enter the pool, disposals are evaluated
// (drawing any unidentified remainder from the pool), and notional
// distributions and equalisation payments adjust the pool cost. Every pool
// mutation appends one PoolUpdate row.
//
// Group 1/Group 2 holding counters track fund units held before and since
// the last equalisation, for plausibility checks only: a declared holding
// that disagrees warns but never fails.
func (l *SecurityLedger) processPool(places int32) ([]PoolUpdate, []*DisposalResult, []string, error) {
	var updates []PoolUpdate
	var results []*DisposalResult
	var warnings []string

	p := pool{Shares: decimal.Zero, Cost: decimal.Zero}
	group1 := decimal.Zero
	group2 := decimal.Zero

	appendUpdate := func(trade *Trade, description string, identified decimal_opt.DecimalOpt, deltaCost decimal.Decimal) {
		util.Assertf(!p.Shares.IsNegative() && !p.Cost.IsNegative(),
			"%s: negative Section 104 pool after %s on %s (%s shares, cost %s)\n",
			l.Security, description, trade.Date, p.Shares, p.Cost)
		updates = append(updates, PoolUpdate{
			Date:        trade.Date,
			Description: description,
			Identified:  identified,
			DeltaCost:   deltaCost,
			PoolShares:  p.Shares,
			PoolCost:    p.Cost,
		})
	}

	for _, trade := range l.Trades {
		switch trade.Kind {
		case DIVIDEND:
			declared, amount := trade.Params[0], trade.Params[1]
			if !p.Shares.IsPositive() {
				return nil, nil, nil, dataErrorf(
					"DIVIDEND on %s for %s with no Section 104 holding", trade.Date, l.Security)
			}
			holding := group1.Add(group2)
			if declared.Sub(holding).Abs().GreaterThan(holdingTolerance) {
				warnings = append(warnings, fmt.Sprintf(
					"DIVIDEND on %s declares %s shares of %s but the derived holding is %s",
					trade.Date, declared, l.Security, holding))
			}
			income := DRound(amount, places, Ceiling)
			p.Cost = p.Cost.Add(income)
			appendUpdate(trade, "DIVIDEND", decimal_opt.Null, income)

		case CAPRETURN:
			declared, amount := trade.Params[0], trade.Params[1]
			if !p.Shares.IsPositive() {
				return nil, nil, nil, dataErrorf(
					"CAPRETURN on %s for %s with no Section 104 holding", trade.Date, l.Security)
			}
			if declared.Sub(group2).Abs().GreaterThan(holdingTolerance) {
				warnings = append(warnings, fmt.Sprintf(
					"CAPRETURN on %s declares %s Group 2 shares of %s but the derived holding is %s",
					trade.Date, declared, l.Security, group2))
			}
			equalisation := DRound(amount, places, Floor)
			if p.Cost.LessThan(equalisation) {
				return nil, nil, nil, dataErrorf(
					"CAPRETURN of %s on %s exceeds the %s Section 104 pool cost of %s",
					equalisation, trade.Date, l.Security, p.Cost)
			}
			p.Cost = p.Cost.Sub(equalisation)
			// The equalisation closes the notional period: Group 2
			// shares become Group 1.
			group1 = group1.Add(group2)
			group2 = decimal.Zero
			appendUpdate(trade, "CAPRETURN", decimal_opt.Null, equalisation.Neg())

		case BUY:
			acquisition := l.Acquisitions[trade.Date]
			group2 = group2.Add(acquisition.Shares)
			if !acquisition.Unidentified.IsPositive() {
				continue
			}
			var deltaCost decimal.Decimal
			if acquisition.Unidentified.Equal(acquisition.Shares) {
				deltaCost = acquisition.Cost
			} else {
				deltaCost = DRound(
					acquisition.Cost.Mul(acquisition.Unidentified).Div(acquisition.Shares),
					places, Ceiling)
			}
			p.Shares = p.Shares.Add(acquisition.Unidentified)
			p.Cost = p.Cost.Add(deltaCost)
			appendUpdate(trade, fmt.Sprintf("BUY %s shares", acquisition.Shares),
				decimal_opt.New(acquisition.Unidentified), deltaCost)

		case SELL:
			disposal := l.Disposals[trade.Date]
			result, err := l.evaluateDisposal(disposal, &p, places, func(description string, identified, deltaCost decimal.Decimal) {
				appendUpdate(trade, description, decimal_opt.New(identified), deltaCost)
			})
			if err != nil {
				return nil, nil, nil, err
			}
			results = append(results, result)

			fromGroup1 := util.MinDecimal(group1, disposal.Shares)
			group1 = group1.Sub(fromGroup1)
			fromGroup2 := util.MinDecimal(group2, disposal.Shares.Sub(fromGroup1))
			group2 = group2.Sub(fromGroup2)
		}
	}

	return updates, results, warnings, nil
}

// evaluateDisposal builds the itemised cost breakdown for one disposal:
// dealing charges, the cost of every identified parcel (whole-acquisition
// cost when fully consumed, pro-rated rounding up otherwise), and the
// Section 104 pool cost for any unidentified remainder. The pool draw uses
// the exact pool cost when the whole pool is liquidated so no rounding
// residue is left behind.
func (l *SecurityLedger) evaluateDisposal(
	disposal *Disposal, p *pool, places int32,
	recordPoolDraw func(description string, identified, deltaCost decimal.Decimal),
) (*DisposalResult, error) {

	identified := decimal.Zero
	for _, id := range disposal.Identifications {
		identified = identified.Add(id.Shares)
	}
	util.Assertf(identified.Add(disposal.Unidentified).Equal(disposal.Shares),
		"%s: disposal on %s identifies %s + %s shares of %s\n",
		l.Security, disposal.Date, identified, disposal.Unidentified, disposal.Shares)

	var lines []CostLine
	costs := decimal.Zero

	if disposal.Charges.IsPositive() {
		lines = append(lines, CostLine{Description: "Dealing charges", Amount: disposal.Charges})
		costs = costs.Add(disposal.Charges)
	}

	for _, id := range disposal.Identifications {
		acquisition := l.Acquisitions[id.AcquisitionDate]
		var cost decimal.Decimal
		var description string
		if id.Shares.Equal(acquisition.Shares) {
			cost = acquisition.Cost
			description = fmt.Sprintf("Cost of %s shares acquired on %s (%s)",
				id.Shares, acquisition.Date, id.Rule)
		} else {
			cost = DRound(acquisition.Cost.Mul(id.Shares).Div(acquisition.Shares), places, Ceiling)
			description = fmt.Sprintf("Cost of %s shares acquired on %s (%s, %s × %s/%s)",
				id.Shares, acquisition.Date, id.Rule,
				acquisition.Cost, id.Shares, acquisition.Shares)
		}
		lines = append(lines, CostLine{Description: description, Amount: cost})
		costs = costs.Add(cost)
	}

	if disposal.Unidentified.IsPositive() {
		if !p.Shares.IsPositive() {
			return nil, dataErrorf(
				"disposal of %s shares of %s on %s with an empty Section 104 holding",
				disposal.Unidentified, l.Security, disposal.Date)
		}
		if disposal.Unidentified.GreaterThan(p.Shares) {
			return nil, dataErrorf(
				"disposal of %s shares of %s on %s exceeds the Section 104 holding of %s shares",
				disposal.Unidentified, l.Security, disposal.Date, p.Shares)
		}
		var cost decimal.Decimal
		var description string
		if disposal.Unidentified.Equal(p.Shares) {
			cost = p.Cost
			description = fmt.Sprintf("Cost of %s shares from the Section 104 holding",
				disposal.Unidentified)
		} else {
			cost = DRound(p.Cost.Mul(disposal.Unidentified).Div(p.Shares), places, Ceiling)
			description = fmt.Sprintf("Cost of %s shares from the Section 104 holding (%s × %s/%s)",
				disposal.Unidentified, p.Cost, disposal.Unidentified, p.Shares)
		}
		p.Shares = p.Shares.Sub(disposal.Unidentified)
		p.Cost = p.Cost.Sub(cost)
		recordPoolDraw(fmt.Sprintf("SELL %s shares", disposal.Shares),
			disposal.Unidentified, cost.Neg())
		lines = append(lines, CostLine{Description: description, Amount: cost})
		costs = costs.Add(cost)
	}

	gain := disposal.Proceeds.Sub(costs)
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	util.Assertf(gain.Equal(disposal.Proceeds.Sub(total)),
		"%s: disposal on %s: gain %s does not reconcile with proceeds %s less costs %s\n",
		l.Security, disposal.Date, gain, disposal.Proceeds, total)

	return &DisposalResult{
		Date:      disposal.Date,
		Security:  l.Security,
		Shares:    disposal.Shares,
		Proceeds:  disposal.Proceeds,
		Costs:     costs,
		Gain:      gain,
		CostLines: lines,
	}, nil
}
