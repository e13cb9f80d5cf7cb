package match

import "github.com/brain2/matchcore/internal/domain"

// StepResult records one named gate's outcome during an Explain run.
type StepResult struct {
	Rule   string
	Passed bool
}

// Trace is the structured diagnostic output of Explain: every forward
// gate, run to completion without short-circuiting, plus (for mutual
// intent, and only when every forward gate passed) the reverse
// direction, and the final boolean Matches itself returns. Diagnostics
// live here so the matching result itself stays a bare boolean;
// Explain is never consulted by Matches.
type Trace struct {
	Steps []StepResult
	Final bool
}

// Explain re-runs every gate against (a, b), recording each one's gate
// name and pass/fail rather than stopping at the first failure, for
// operator debugging.
func (m *Matcher) Explain(a, b domain.Listing) Trace {
	t := Trace{}
	record := func(rule string, passed bool) { t.Steps = append(t.Steps, StepResult{Rule: rule, Passed: passed}) }

	record("intent gate", m.intentGate(a, b))
	record("domain/category gate", m.domainCategoryGate(a, b))
	if a.Intent != domain.IntentMutual {
		record("items gate", m.itemsGate(a, b))
	}
	record("other->self gate", m.otherSelfForward(a, b))
	record("location gate", m.locationGate(a, b))

	allPass := true
	for _, s := range t.Steps {
		if !s.Passed {
			allPass = false
			break
		}
	}
	if allPass && a.Intent == domain.IntentMutual {
		record("reverse direction", m.unidirectional(b, a))
	}

	t.Final = m.Matches(a, b)
	return t
}
