package matching

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"farm-policy/internal/domain/policy"
)

type CheckKind string

const (
	CheckAge         CheckKind = "age"
	CheckIncome      CheckKind = "income"
	CheckFarmArea    CheckKind = "farm_area"
	CheckEcoCert     CheckKind = "eco_cert"
	CheckFarmingType CheckKind = "farming_type"
	CheckRegion      CheckKind = "region"
)

const (
	weightAge         = 25
	weightIncome      = 25
	weightFarmArea    = 25
	weightFarmingType = 10
	weightRegion      = 10

	// Eco certification is asymmetric: a policy that does not ask for it
	// still pays a baseline, and one that asks for it penalises its absence.
	ecoCertBaseline = 10
	ecoCertHeld     = 15
	ecoCertMissing  = -10
)

// Outcome is the result of one rule check. Constrained reports whether the
// policy sets the rule field at all.
type Outcome struct {
	Kind        CheckKind
	Constrained bool
	Satisfied   bool
	Score       int
	Reason      string
	Missing     string
}

type check struct {
	kind CheckKind
	eval func(s subject, p *policy.Policy) Outcome
}

// Evaluation order is fixed; reasons and missing conditions follow it.
var checks = []check{
	{kind: CheckAge, eval: checkAge},
	{kind: CheckIncome, eval: checkIncome},
	{kind: CheckFarmArea, eval: checkFarmArea},
	{kind: CheckEcoCert, eval: checkEcoCert},
	{kind: CheckFarmingType, eval: checkFarmingType},
	{kind: CheckRegion, eval: checkRegion},
}

func checkAge(s subject, p *policy.Policy) Outcome {
	o := Outcome{Kind: CheckAge}
	if p.MinAge == nil && p.MaxAge == nil {
		o.Satisfied = true
		o.Score = weightAge
		o.Reason = "나이 제한 없음"
		return o
	}
	o.Constrained = true

	var label, need string
	switch {
	case p.MinAge != nil && p.MaxAge != nil:
		label = fmt.Sprintf("%d~%d세", *p.MinAge, *p.MaxAge)
		need = "나이 " + label
	case p.MinAge != nil:
		label = fmt.Sprintf("만 %d세 이상", *p.MinAge)
		need = label
	default:
		label = fmt.Sprintf("만 %d세 이하", *p.MaxAge)
		need = label
	}

	if !s.ageKnown {
		o.Missing = need + " 필요 (생년월일 정보 없음)"
		return o
	}

	ok := true
	if p.MinAge != nil && s.age < *p.MinAge {
		ok = false
	}
	if p.MaxAge != nil && s.age > *p.MaxAge {
		ok = false
	}
	if !ok {
		o.Missing = fmt.Sprintf("%s 필요 (현재 %d세)", need, s.age)
		return o
	}

	o.Satisfied = true
	o.Score = weightAge
	o.Reason = fmt.Sprintf("나이 조건 충족 (%s, 현재 %d세)", label, s.age)
	return o
}

func checkIncome(s subject, p *policy.Policy) Outcome {
	o := Outcome{Kind: CheckIncome}
	if p.MaxIncome == nil {
		o.Satisfied = true
		o.Score = weightIncome
		return o
	}
	o.Constrained = true

	if MonthlyIncome(s.profile.AnnualIncome) > *p.MaxIncome {
		o.Missing = fmt.Sprintf("월 소득 %d만원 이하 필요", *p.MaxIncome)
		return o
	}
	o.Satisfied = true
	o.Score = weightIncome
	o.Reason = fmt.Sprintf("소득 조건 충족 (월 %d만원 이하)", *p.MaxIncome)
	return o
}

func checkFarmArea(s subject, p *policy.Policy) Outcome {
	o := Outcome{Kind: CheckFarmArea}
	if p.RequiredFarmArea == nil {
		o.Satisfied = true
		o.Score = weightFarmArea
		return o
	}
	o.Constrained = true

	if s.profile.FarmArea < *p.RequiredFarmArea {
		o.Missing = fmt.Sprintf("농지 %d평 이상 필요 (현재 %d평)", *p.RequiredFarmArea, s.profile.FarmArea)
		return o
	}
	o.Satisfied = true
	o.Score = weightFarmArea
	o.Reason = fmt.Sprintf("농지 면적 조건 충족 (%d평)", s.profile.FarmArea)
	return o
}

func checkEcoCert(s subject, p *policy.Policy) Outcome {
	o := Outcome{Kind: CheckEcoCert}
	if !p.RequiresEcoCert {
		o.Satisfied = true
		o.Score = ecoCertBaseline
		return o
	}
	o.Constrained = true

	if !s.profile.IsEcoCertified {
		o.Score = ecoCertMissing
		o.Missing = "친환경 인증 필요"
		return o
	}
	o.Satisfied = true
	o.Score = ecoCertHeld
	o.Reason = "친환경 인증 보유"
	return o
}

func checkFarmingType(s subject, p *policy.Policy) Outcome {
	o := Outcome{Kind: CheckFarmingType}
	if len(p.RequiredFarmingTypes) == 0 {
		return o
	}
	o.Constrained = true

	if !slices.Contains(p.RequiredFarmingTypes, s.profile.FarmingType) {
		o.Missing = fmt.Sprintf("영농 형태: %s 필요", strings.Join(p.RequiredFarmingTypes, ", "))
		return o
	}
	o.Satisfied = true
	o.Score = weightFarmingType
	o.Reason = fmt.Sprintf("영농 형태 일치 (%s)", s.profile.FarmingType)
	return o
}

func checkRegion(s subject, p *policy.Policy) Outcome {
	o := Outcome{Kind: CheckRegion}
	if p.RequiredRegion == "" {
		return o
	}
	o.Constrained = true

	region := p.RequiredRegion
	if s.profile.AddressSido != region && s.profile.AddressSigungu != region {
		o.Missing = fmt.Sprintf("%s 지역 거주 필요", region)
		return o
	}
	o.Satisfied = true
	o.Score = weightRegion
	o.Reason = fmt.Sprintf("해당 지역 거주 (%s)", region)
	return o
}

// MonthlyIncome converts an annual amount to a monthly one, rounding halves up.
func MonthlyIncome(annual int) int {
	return int(math.Floor(float64(annual)/12 + 0.5))
}
