package domain

import "math"

// The derived-amount contract: a line's monetary amount is a deterministic
// function of its quantity/rate fields, computed identically on create,
// update, and display. The functions here are total — malformed numeric
// input degrades to 0 so previews never fail.

// ComputeAmount derives the monetary amount for a ledger line.
//
//	human resource: time * quantity * unitCost
//	material:       quantity * unitCost
//	action plan:    hours * unitCost
//
// The result is rounded half-up to two decimals at computation time, so the
// stored and displayed values never disagree. Unknown kinds yield 0.
func ComputeAmount(kind LedgerKind, l LedgerLine) float64 {
	t := sanitize(l.Time)
	q := sanitize(l.Quantity)
	h := sanitize(l.Hours)
	c := sanitize(l.UnitCost)

	switch kind {
	case KindHumanResource:
		return round2(t * q * c)
	case KindMaterial:
		return round2(q * c)
	case KindActionPlan:
		return round2(h * c)
	default:
		return 0
	}
}

// Recompute refreshes the derived amount from the line's current fields.
func (l *LedgerLine) Recompute() {
	l.Amount = ComputeAmount(l.Kind, *l)
}

// ComputeTotal sums the current line amounts of a ledger. The total is never
// stored independently; it is derived on every read so it cannot diverge
// from its lines.
func ComputeTotal(lines []LedgerLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += sanitize(l.Amount)
	}
	return round2(sum)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// round2 rounds half-up (away from zero) to two decimal places.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return math.Ceil(v*100-0.5) / 100
	}
	return math.Floor(v*100+0.5) / 100
}
