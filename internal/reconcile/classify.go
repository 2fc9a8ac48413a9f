package reconcile

import "github.com/shopspring/decimal"

// DefaultTolerance is the absolute slack, in rupees, below which amount
// differences are ignored.
var DefaultTolerance = decimal.RequireFromString("2.00")

// Classify decides the status of an invoice-level pair. A missing side wins
// over any amount comparison; otherwise one field beyond tolerance is enough
// for Mismatch. A difference equal to the tolerance still matches.
func Classify(p MatchedPair, tolerance decimal.Decimal) Status {
	switch p.Provenance {
	case RightOnly:
		return StatusMissingInLedger
	case LeftOnly:
		return StatusMissingInStatement
	}

	l, r := p.Left, p.Right
	fields := [][2]decimal.Decimal{
		{l.Gross, r.Gross},
		{l.Taxable, r.Taxable},
		{l.IGST, r.IGST},
		{l.CGST, r.CGST},
		{l.SGST, r.SGST},
	}
	for _, f := range fields {
		if exceeds(f[0].Sub(f[1]), tolerance) {
			return StatusMismatch
		}
	}
	return StatusMatched
}

// ClassifyDeltas is the summary-report variant working on precomputed deltas.
func ClassifyDeltas(prov Provenance, deltas []decimal.Decimal, tolerance decimal.Decimal) Status {
	switch prov {
	case RightOnly:
		return StatusMissingInLedger
	case LeftOnly:
		return StatusMissingInStatement
	}
	for _, d := range deltas {
		if exceeds(d, tolerance) {
			return StatusMismatch
		}
	}
	return StatusMatched
}

func exceeds(diff, tolerance decimal.Decimal) bool {
	return diff.Abs().GreaterThan(tolerance)
}
