package dto

import (
	"time"

	"farm-policy/internal/domain/profile"
	ucprofile "farm-policy/internal/usecase/profile"

	"github.com/google/uuid"
)

type ProfileRequest struct {
	Name               string   `json:"name"`
	BirthDate          string   `json:"birth_date"`
	Phone              string   `json:"phone"`
	AddressSido        string   `json:"address_sido"`
	AddressSigungu     string   `json:"address_sigungu"`
	AddressDetail      string   `json:"address_detail"`
	FarmArea           int      `json:"farm_area"`
	CropTypes          []string `json:"crop_types"`
	FarmingType        string   `json:"farming_type"`
	FarmRegistrationNo string   `json:"farm_registration_no"`
	HouseholdMembers   int      `json:"household_members"`
	AnnualIncome       int      `json:"annual_income"`
	IsEcoCertified     bool     `json:"is_eco_certified"`
	IsSuccessorFarmer  bool     `json:"is_successor_farmer"`
}

func (r ProfileRequest) Input() ucprofile.Input {
	return ucprofile.Input{
		Name:               r.Name,
		BirthDate:          r.BirthDate,
		Phone:              r.Phone,
		AddressSido:        r.AddressSido,
		AddressSigungu:     r.AddressSigungu,
		AddressDetail:      r.AddressDetail,
		FarmArea:           r.FarmArea,
		CropTypes:          r.CropTypes,
		FarmingType:        r.FarmingType,
		FarmRegistrationNo: r.FarmRegistrationNo,
		HouseholdMembers:   r.HouseholdMembers,
		AnnualIncome:       r.AnnualIncome,
		IsEcoCertified:     r.IsEcoCertified,
		IsSuccessorFarmer:  r.IsSuccessorFarmer,
	}
}

// ProfileResponse renders birth_date as YYYY-MM-DD, or null when unknown.
type ProfileResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Name               string    `json:"name"`
	BirthDate          *string   `json:"birth_date"`
	Phone              string    `json:"phone"`
	AddressSido        string    `json:"address_sido"`
	AddressSigungu     string    `json:"address_sigungu"`
	AddressDetail      string    `json:"address_detail"`
	FarmArea           int       `json:"farm_area"`
	CropTypes          []string  `json:"crop_types"`
	FarmingType        string    `json:"farming_type"`
	FarmRegistrationNo string    `json:"farm_registration_no"`
	HouseholdMembers   int       `json:"household_members"`
	AnnualIncome       int       `json:"annual_income"`
	IsEcoCertified     bool      `json:"is_eco_certified"`
	IsSuccessorFarmer  bool      `json:"is_successor_farmer"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewProfileResponse(p profile.FarmerProfile) ProfileResponse {
	var birth *string
	if !p.BirthDate.IsZero() {
		s := p.BirthDate.Format(profile.DateLayout)
		birth = &s
	}
	crops := p.CropTypes
	if crops == nil {
		crops = []string{}
	}
	return ProfileResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		Name:               p.Name,
		BirthDate:          birth,
		Phone:              p.Phone,
		AddressSido:        p.AddressSido,
		AddressSigungu:     p.AddressSigungu,
		AddressDetail:      p.AddressDetail,
		FarmArea:           p.FarmArea,
		CropTypes:          crops,
		FarmingType:        p.FarmingType,
		FarmRegistrationNo: p.FarmRegistrationNo,
		HouseholdMembers:   p.HouseholdMembers,
		AnnualIncome:       p.AnnualIncome,
		IsEcoCertified:     p.IsEcoCertified,
		IsSuccessorFarmer:  p.IsSuccessorFarmer,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
