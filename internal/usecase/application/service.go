package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"farm-policy/internal/domain/application"
	"farm-policy/internal/domain/policy"
	"farm-policy/internal/domain/profile"
	"farm-policy/internal/infrastructure/pdf"
	"farm-policy/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPolicyNotFound        = errors.New("policy not found")
	ErrTemplateNotFound      = errors.New("form template not found")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidInput          = errors.New("invalid input")
	ErrRenderFailed          = errors.New("pdf render failed")
	ErrInternal              = errors.New("internal error")
)

// MissingFieldsError lists the labels of required fields left blank.
type MissingFieldsError struct {
	Labels []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Labels, ", ")
}

func (e *MissingFieldsError) Is(target error) bool { return target == ErrMissingRequiredFields }

type Renderer interface {
	Render(ctx context.Context, f pdf.Form) ([]byte, error)
}

type Draft struct {
	Policy   policy.Policy        `json:"policy"`
	Template policy.FormTemplate  `json:"template"`
	FormData application.FormData `json:"form_data"`
}

type SaveInput struct {
	PolicyID uuid.UUID
	FormData application.FormData
	Status   string
}

type Usecase interface {
	NewDraft(ctx context.Context, userID, policyID uuid.UUID) (Draft, error)
	Save(ctx context.Context, userID uuid.UUID, in SaveInput) (application.Application, error)
	List(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	RenderPDF(ctx context.Context, userID, applicationID uuid.UUID) ([]byte, error)
}

type Service struct {
	apps     repository.ApplicationRepository
	policies repository.PolicyRepository
	profiles repository.ProfileRepository
	renderer Renderer
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	apps repository.ApplicationRepository,
	policies repository.PolicyRepository,
	profiles repository.ProfileRepository,
	renderer Renderer,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		apps:     apps,
		policies: policies,
		profiles: profiles,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

// NewDraft prepares an application form for the policy, pre-filled from the
// user's profile when one exists.
func (s *Service) NewDraft(ctx context.Context, userID, policyID uuid.UUID) (Draft, error) {
	p, tpl, err := s.policyWithTemplate(ctx, policyID)
	if err != nil {
		return Draft{}, err
	}
	if tpl == nil {
		return Draft{}, ErrTemplateNotFound
	}

	data := application.FormData{}
	prof, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		data = application.Prefill(tpl.Fields, prof)
	case errors.Is(err, profile.ErrNotFound):
	default:
		s.logger.Error("load profile", zap.String("user_id", userID.String()), zap.Error(err))
		return Draft{}, ErrInternal
	}

	return Draft{Policy: p, Template: *tpl, FormData: data}, nil
}

// Save stores a new application. Completing an application requires every
// required field of the policy's template.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, in SaveInput) (application.Application, error) {
	status, err := application.ParseStatus(strings.TrimSpace(in.Status))
	if err != nil {
		return application.Application{}, fmt.Errorf("%w: status", ErrInvalidInput)
	}
	if in.PolicyID == uuid.Nil {
		return application.Application{}, fmt.Errorf("%w: policy_id", ErrInvalidInput)
	}

	_, tpl, err := s.policyWithTemplate(ctx, in.PolicyID)
	if err != nil {
		return application.Application{}, err
	}

	data := in.FormData
	if data == nil {
		data = application.FormData{}
	}
	if status == application.StatusCompleted && tpl != nil {
		if missing := application.MissingRequired(tpl.Fields, data); len(missing) > 0 {
			return application.Application{}, &MissingFieldsError{Labels: missing}
		}
	}

	saved, err := s.apps.Create(ctx, application.Application{
		UserID:   userID,
		PolicyID: in.PolicyID,
		FormData: data,
		Status:   status,
	})
	if err != nil {
		s.logger.Error("create application", zap.String("user_id", userID.String()), zap.Error(err))
		return application.Application{}, ErrInternal
	}
	return saved, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	out, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list applications", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// RenderPDF prints the application and marks it printed.
func (s *Service) RenderPDF(ctx context.Context, userID, applicationID uuid.UUID) ([]byte, error) {
	app, err := s.apps.GetByID(ctx, userID, applicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("get application", zap.String("application_id", applicationID.String()), zap.Error(err))
		return nil, ErrInternal
	}

	p, tpl, err := s.policyWithTemplate(ctx, app.PolicyID)
	if err != nil {
		return nil, err
	}

	form := pdf.Form{
		FormName:    p.Title + " 신청서",
		PolicyTitle: p.Title,
		Department:  p.Department,
		Date:        s.now(),
	}
	if tpl != nil {
		form.FormName = tpl.FormName
		form.Rows = templateRows(tpl.Fields, app.FormData)
	} else {
		form.Rows = plainRows(app.FormData)
	}

	out, err := s.renderer.Render(ctx, form)
	if err != nil {
		s.logger.Error("render pdf", zap.String("application_id", applicationID.String()), zap.Error(err))
		return nil, ErrRenderFailed
	}

	if app.Status != application.StatusPrinted {
		if err := s.apps.UpdateStatus(ctx, userID, applicationID, application.StatusPrinted); err != nil {
			s.logger.Warn("mark application printed", zap.String("application_id", applicationID.String()), zap.Error(err))
		}
	}
	return out, nil
}

func (s *Service) policyWithTemplate(ctx context.Context, policyID uuid.UUID) (policy.Policy, *policy.FormTemplate, error) {
	p, err := s.policies.GetByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, policy.ErrNotFound) {
			return policy.Policy{}, nil, ErrPolicyNotFound
		}
		s.logger.Error("get policy", zap.String("policy_id", policyID.String()), zap.Error(err))
		return policy.Policy{}, nil, ErrInternal
	}
	tpl, err := s.policies.GetFormTemplate(ctx, policyID)
	if err != nil {
		s.logger.Error("get form template", zap.String("policy_id", policyID.String()), zap.Error(err))
		return policy.Policy{}, nil, ErrInternal
	}
	return p, tpl, nil
}

func templateRows(fields []policy.FormField, data application.FormData) []pdf.Row {
	rows := make([]pdf.Row, 0, len(fields))
	for _, f := range fields {
		v := data[f.ID]
		if f.Type == policy.FieldCheckbox {
			switch v {
			case "true":
				v = "예"
			case "false":
				v = "아니오"
			}
		}
		rows = append(rows, pdf.Row{Label: f.Label, Value: v, Required: f.Required})
	}
	return rows
}

func plainRows(data application.FormData) []pdf.Row {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([]pdf.Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, pdf.Row{Label: k, Value: data[k]})
	}
	return rows
}
