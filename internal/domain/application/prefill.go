package application

import (
	"strconv"
	"strings"

	"farm-policy/internal/domain/policy"
	"farm-policy/internal/domain/profile"
)

// Prefill fills the fields of a template that carry a profile key with the
// matching profile value. Unknown keys and empty text values are skipped.
func Prefill(fields []policy.FormField, prof profile.FarmerProfile) FormData {
	out := FormData{}
	for _, f := range fields {
		if f.ProfileKey == "" {
			continue
		}
		v, ok := profileValue(prof, f.ProfileKey)
		if !ok {
			continue
		}
		out[f.ID] = v
	}
	return out
}

// MissingRequired returns the labels of required fields left blank, in
// template order.
func MissingRequired(fields []policy.FormField, data FormData) []string {
	missing := make([]string, 0)
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(data[f.ID]) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

func profileValue(p profile.FarmerProfile, key string) (string, bool) {
	text := func(s string) (string, bool) { return s, s != "" }

	switch key {
	case "name":
		return text(p.Name)
	case "birth_date":
		if p.BirthDate.IsZero() {
			return "", false
		}
		return p.BirthDate.Format(profile.DateLayout), true
	case "phone":
		return text(p.Phone)
	case "address_sido":
		return text(p.AddressSido)
	case "address_sigungu":
		return text(p.AddressSigungu)
	case "address_detail":
		return text(p.AddressDetail)
	case "farm_area":
		return strconv.Itoa(p.FarmArea), true
	case "crop_types":
		return text(strings.Join(p.CropTypes, ", "))
	case "farming_type":
		return text(p.FarmingType)
	case "farm_registration_no":
		return text(p.FarmRegistrationNo)
	case "household_members":
		return strconv.Itoa(p.HouseholdMembers), true
	case "annual_income":
		return strconv.Itoa(p.AnnualIncome), true
	case "is_eco_certified":
		return strconv.FormatBool(p.IsEcoCertified), true
	case "is_successor_farmer":
		return strconv.FormatBool(p.IsSuccessorFarmer), true
	default:
		return "", false
	}
}
