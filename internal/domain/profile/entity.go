package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// FarmerProfile holds the self-reported attributes of a farmer. AnnualIncome
// is in 만원 per year and FarmArea in pyeong.
type FarmerProfile struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Name               string    `json:"name"`
	BirthDate          time.Time `json:"birth_date"`
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

// Common farming types offered by the profile form.
var FarmingTypes = []string{"논농업", "밭농업", "과수", "축산", "시설원예", "특용작물", "임업", "기타"}

const DateLayout = "2006-01-02"
