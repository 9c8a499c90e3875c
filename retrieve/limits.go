package retrieve

// Limits caps how many snippets each lane contributes to the final
// result. Zero or negative values fall back to the defaults.
type Limits struct {
	Facts   int // default 6
	Resume  int // default 12 (merged into fact candidates, not surfaced alone)
	Voice   int // default 5
	Profile int // default 5
	Company int // default 5
}

// DefaultLimits returns the standard per-lane caps.
func DefaultLimits() Limits {
	return Limits{
		Facts:   6,
		Resume:  12,
		Voice:   5,
		Profile: 5,
		Company: 5,
	}
}

func (l Limits) normalized() Limits {
	defaults := DefaultLimits()
	if l.Facts <= 0 {
		l.Facts = defaults.Facts
	}
	if l.Resume <= 0 {
		l.Resume = defaults.Resume
	}
	if l.Voice <= 0 {
		l.Voice = defaults.Voice
	}
	if l.Profile <= 0 {
		l.Profile = defaults.Profile
	}
	if l.Company <= 0 {
		l.Company = defaults.Company
	}
	return l
}
