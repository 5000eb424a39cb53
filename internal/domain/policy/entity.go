package policy

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("policy not found")
	ErrTemplateNotFound = errors.New("form template not found")
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	SortOrder   int       `json:"sort_order"`
}

// Policy is a support program. The rule fields are optional; a nil pointer,
// an empty list or an empty region means the policy does not constrain that
// dimension.
type Policy struct {
	ID                uuid.UUID  `json:"id"`
	CategoryID        uuid.UUID  `json:"category_id"`
	Category          *Category  `json:"category,omitempty"`
	Title             string     `json:"title"`
	Summary           string     `json:"summary"`
	Description       string     `json:"description"`
	Eligibility       string     `json:"eligibility"`
	Benefits          string     `json:"benefits"`
	RequiredDocuments []string   `json:"required_documents"`
	ApplyStartDate    *time.Time `json:"apply_start_date"`
	ApplyEndDate      *time.Time `json:"apply_end_date"`
	ApplyURL          string     `json:"apply_url"`
	ApplyMethod       string     `json:"apply_method"`
	ContactInfo       string     `json:"contact_info"`
	Department        string     `json:"department"`
	APISource         *string    `json:"api_source"`
	ExternalID        string     `json:"external_id,omitempty"`

	MinAge               *int     `json:"min_age"`
	MaxAge               *int     `json:"max_age"`
	MinIncome            *int     `json:"min_income"`
	MaxIncome            *int     `json:"max_income"`
	RequiredFarmArea     *int     `json:"required_farm_area"`
	RequiredFarmingTypes []string `json:"required_farming_types"`
	RequiredRegion       string   `json:"required_region,omitempty"`
	RequiresEcoCert      bool     `json:"requires_eco_cert"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldCheckbox FieldType = "checkbox"
)

// FormField is one input of an application form. ProfileKey names the
// profile attribute used to pre-fill it.
type FormField struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	ProfileKey  string    `json:"profile_key,omitempty"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

type FormTemplate struct {
	ID       uuid.UUID   `json:"id"`
	PolicyID uuid.UUID   `json:"policy_id"`
	FormName string      `json:"form_name"`
	Fields   []FormField `json:"fields"`
}
