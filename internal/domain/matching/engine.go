// Package matching scores how well a farmer profile fits each support
// policy. It is pure: no I/O, no shared state, safe for concurrent use.
package matching

import (
	"sort"
	"time"

	"farm-policy/internal/domain/policy"
	"farm-policy/internal/domain/profile"
)

// RecommendThreshold is the score a match must exceed to be recommended.
const RecommendThreshold = 30

type PolicyMatch struct {
	Policy            policy.Policy `json:"policy"`
	MatchScore        int           `json:"match_score"`
	MatchReasons      []string      `json:"match_reasons"`
	MissingConditions []string      `json:"missing_conditions"`
}

// Match evaluates every policy against the profile, drops matches scoring
// RecommendThreshold or less and returns the rest by descending score.
func Match(prof profile.FarmerProfile, policies []policy.Policy) []PolicyMatch {
	return MatchAt(time.Now(), prof, policies)
}

// MatchAt is Match with an explicit clock; age is derived from now's year.
func MatchAt(now time.Time, prof profile.FarmerProfile, policies []policy.Policy) []PolicyMatch {
	s := newSubject(now, prof)

	out := make([]PolicyMatch, 0, len(policies))
	for i := range policies {
		m := s.evaluate(policies[i])
		if m.MatchScore <= RecommendThreshold {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// Evaluate scores a single policy without applying the recommendation
// threshold.
func Evaluate(now time.Time, prof profile.FarmerProfile, p policy.Policy) PolicyMatch {
	return newSubject(now, prof).evaluate(p)
}

// Explain returns the outcome of every check for one policy, in evaluation
// order.
func Explain(now time.Time, prof profile.FarmerProfile, p policy.Policy) []Outcome {
	s := newSubject(now, prof)
	out := make([]Outcome, 0, len(checks))
	for _, c := range checks {
		out = append(out, c.eval(s, &p))
	}
	return out
}

type subject struct {
	profile  profile.FarmerProfile
	age      int
	ageKnown bool
}

func newSubject(now time.Time, prof profile.FarmerProfile) subject {
	s := subject{profile: prof}
	if !prof.BirthDate.IsZero() {
		// Calendar-year difference; the birthday within the year is ignored.
		s.age = now.Year() - prof.BirthDate.Year()
		s.ageKnown = true
	}
	return s
}

func (s subject) evaluate(p policy.Policy) PolicyMatch {
	score := 0
	reasons := make([]string, 0, len(checks))
	missing := make([]string, 0)

	for _, c := range checks {
		o := c.eval(s, &p)
		score += o.Score
		if o.Reason != "" {
			reasons = append(reasons, o.Reason)
		}
		if o.Missing != "" {
			missing = append(missing, o.Missing)
		}
	}

	return PolicyMatch{
		Policy:            p,
		MatchScore:        clampInt(score, 0, 100),
		MatchReasons:      reasons,
		MissingConditions: missing,
	}
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
