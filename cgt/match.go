package cgt

import (
	"github.com/LateGenXer/cgtcalc/util"
)

// An acquisition this many calendar days after a disposal (or fewer) is
// matched under the bed & breakfast rule.
const bedAndBreakfastDays = 30

// identify matches as many shares as both records still have unidentified,
// recording the identification on the disposal.
func identify(disposal *Disposal, acquisition *Acquisition, rule Rule) {
	shares := util.MinDecimal(disposal.Unidentified, acquisition.Unidentified)
	if !shares.IsPositive() {
		return
	}
	acquisition.Unidentified = acquisition.Unidentified.Sub(shares)
	disposal.Unidentified = disposal.Unidentified.Sub(shares)
	disposal.Identifications = append(disposal.Identifications, Identification{
		Shares:          shares,
		Rule:            rule,
		AcquisitionDate: acquisition.Date,
	})
}

// matchSameDay applies the same-day rule: shares disposed of on a date with
// an acquisition on that same date are identified against it first.
func (l *SecurityLedger) matchSameDay() {
	for _, day := range l.disposalDates {
		acquisition, ok := l.Acquisitions[day]
		if !ok {
			continue
		}
		identify(l.Disposals[day], acquisition, SameDay)
	}
}

// matchBedAndBreakfast walks disposals in date order and greedily
// identifies remaining shares against acquisitions strictly after the
// disposal and at most 30 calendar days later, earliest acquisition first.
func (l *SecurityLedger) matchBedAndBreakfast() {
	for _, day := range l.disposalDates {
		disposal := l.Disposals[day]
		if disposal.Unidentified.IsZero() {
			continue
		}
		for _, acquisitionDay := range l.acquisitionDates {
			if !acquisitionDay.After(day) {
				continue
			}
			if acquisitionDay.DaysSince(day) > bedAndBreakfastDays {
				break
			}
			acquisition := l.Acquisitions[acquisitionDay]
			if acquisition.Unidentified.IsZero() {
				continue
			}
			identify(disposal, acquisition, BedAndBreakfast)
			if disposal.Unidentified.IsZero() {
				break
			}
		}
	}
}
