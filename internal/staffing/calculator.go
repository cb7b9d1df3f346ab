package staffing

import "math"

const (
	// DefaultAnswerTargetSeconds is the answer-time target the planning
	// pipeline staffs against.
	DefaultAnswerTargetSeconds = 20

	// DefaultServiceLevelTarget is the fraction of contacts that must be
	// answered within the target.
	DefaultServiceLevelTarget = 0.8

	// MaxRequiredAgents caps the requirement search. Hitting the cap means
	// the inputs are unserviceable at any realistic headcount.
	MaxRequiredAgents = 1000
)

// Calculator derives staffing requirements from offered traffic using the
// Erlang-C queueing model.
type Calculator struct{}

// NewCalculator returns a ready Calculator.
func NewCalculator() Calculator {
	return Calculator{}
}

// Intensity returns the offered load in Erlangs for a volume of contacts
// with the given average handle time over a period.
func (Calculator) Intensity(volume int, periodSeconds int, ahtSeconds int) float64 {
	if volume <= 0 || periodSeconds <= 0 || ahtSeconds <= 0 {
		return 0
	}
	return float64(volume) * float64(ahtSeconds) / float64(periodSeconds)
}

// QueueingProbability returns the Erlang-C probability that an arriving
// contact has to wait. An unstable system (agents <= intensity) returns 1.0.
func (Calculator) QueueingProbability(agents int, intensity float64) float64 {
	if intensity <= 0 {
		return 0
	}
	if float64(agents) <= intensity {
		return 1.0
	}

	// Accumulate A^i/i! terms incrementally to avoid factorial overflow.
	term := 1.0
	sum := 1.0
	for i := 1; i < agents; i++ {
		term *= intensity / float64(i)
		sum += term
	}
	numerator := term * (intensity / float64(agents)) * (float64(agents) / (float64(agents) - intensity))

	p := numerator / (sum + numerator)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 1.0
	}
	return p
}

// ServiceLevel returns the fraction of contacts answered within
// targetSeconds given the staffed agent count. A system with agents <=
// intensity can meet no target and returns 0.0.
func (c Calculator) ServiceLevel(agents int, intensity float64, ahtSeconds int, targetSeconds int) float64 {
	if intensity <= 0 {
		return 1.0
	}
	if float64(agents) <= intensity || ahtSeconds <= 0 {
		return 0.0
	}

	pw := c.QueueingProbability(agents, intensity)
	exponent := -(float64(agents) - intensity) * float64(targetSeconds) / float64(ahtSeconds)
	sl := 1.0 - pw*math.Exp(exponent)
	if sl < 0 {
		return 0.0
	}
	return sl
}

// RequiredAgents returns the minimum agent count that meets slaTarget for
// the given traffic, searching upward from the first stable staffing level.
// Zero volume needs zero agents. The search is capped at MaxRequiredAgents.
func (c Calculator) RequiredAgents(volume int, periodSeconds int, ahtSeconds int, targetSeconds int, slaTarget float64) int {
	intensity := c.Intensity(volume, periodSeconds, ahtSeconds)
	if intensity <= 0 {
		return 0
	}

	for agents := int(math.Ceil(intensity)) + 1; agents <= MaxRequiredAgents; agents++ {
		if c.ServiceLevel(agents, intensity, ahtSeconds, targetSeconds) >= slaTarget {
			return agents
		}
	}
	return MaxRequiredAgents
}
