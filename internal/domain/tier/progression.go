package tier

import "time"

// Rules holds the knobs of the progression engine. The counter lives in
// [0, ProgressThreshold); it is replenished by on-time settlements and
// depleted by overdue days.
type Rules struct {
	// ProgressThreshold is the number of on-time settlements needed for a
	// promotion, and also the recovery buffer granted on each demotion.
	ProgressThreshold int
	// DueDay is the fixed due day of the monthly billing cycle; days past
	// it count against the borrower's progress.
	DueDay int
}

func DefaultRules() Rules {
	return Rules{ProgressThreshold: 10, DueDay: 10}
}

// Progress pairs a tier with the settlement counter so both progression
// mechanisms can be expressed as pure functions over it.
type Progress struct {
	Tier  Name
	Score int
}

// ApplySettlement credits one on-time settlement. When the counter reaches
// the threshold the borrower moves up one tier and the counter resets.
// Reports whether a promotion happened.
func (r Rules) ApplySettlement(p Progress) (Progress, bool) {
	p.Score++
	if p.Score < r.ProgressThreshold {
		return p, false
	}
	rank := Rank(p.Tier)
	if rank < 0 || rank == len(catalog)-1 {
		// Already at the top: counter resets, tier holds.
		p.Score = 0
		return p, false
	}
	p.Tier = catalog[rank+1].Name
	p.Score = 0
	return p, true
}

// ApplyOverdue debits overdueDays from the counter. Each time the counter
// falls to zero or below while the borrower sits above the lowest tier, the
// borrower drops one tier and the counter is topped up with the recovery
// buffer before the remaining deficit applies. The loop is bounded by the
// catalog size; at the lowest tier the counter clamps at zero.
// Returns the new state and the number of tiers dropped.
func (r Rules) ApplyOverdue(p Progress, overdueDays int) (Progress, int) {
	if overdueDays <= 0 {
		return p, 0
	}
	p.Score -= overdueDays
	rank := Rank(p.Tier)
	if rank < 0 {
		rank = 0
		p.Tier = catalog[0].Name
	}
	demotions := 0
	for i := 0; i < len(catalog) && p.Score <= 0 && rank > 0; i++ {
		rank--
		p.Score += r.ProgressThreshold
		demotions++
	}
	p.Tier = catalog[rank].Name
	if p.Score < 0 {
		p.Score = 0
	}
	if p.Score >= r.ProgressThreshold {
		p.Score = r.ProgressThreshold - 1
	}
	return p, demotions
}

// OverdueDays counts the days of asOf's month past the due day.
func (r Rules) OverdueDays(asOf time.Time) int {
	d := asOf.Day() - r.DueDay
	if d < 0 {
		return 0
	}
	return d
}
