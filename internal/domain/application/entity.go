package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("application not found")
	ErrInvalidStatus = errors.New("invalid application status")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
	StatusPrinted   Status = "printed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusCompleted, StatusPrinted:
		return Status(s), nil
	case "":
		return StatusDraft, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FormData maps form field ids to their entered values.
type FormData map[string]string

type Application struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PolicyID  uuid.UUID `json:"policy_id"`
	FormData  FormData  `json:"form_data"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PolicyTitle      string `json:"policy_title,omitempty"`
	PolicyDepartment string `json:"policy_department,omitempty"`
}
