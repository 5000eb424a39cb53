package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farm-policy/internal/domain/document"
	"farm-policy/internal/domain/policy"
	"farm-policy/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrPolicyNotFound   = errors.New("policy not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
)

// RegisterInput describes an uploaded file. FileName only contributes its
// extension to the storage path.
type RegisterInput struct {
	DocName  string
	DocType  string
	FileName string
	FileSize int64
	MimeType string
}

type Usecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]document.UserDocument, error)
	Register(ctx context.Context, userID uuid.UUID, in RegisterInput) (document.UserDocument, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (document.UserDocument, error)
	CheckForPolicy(ctx context.Context, userID, policyID uuid.UUID) ([]document.CheckItem, error)
	Types() []string
}

type Service struct {
	docs     repository.DocumentRepository
	policies repository.PolicyRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(docs repository.DocumentRepository, policies repository.PolicyRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{docs: docs, policies: policies, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]document.UserDocument, error) {
	out, err := s.docs.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list documents", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Register(ctx context.Context, userID uuid.UUID, in RegisterInput) (document.UserDocument, error) {
	name := strings.TrimSpace(in.DocName)
	docType := strings.TrimSpace(in.DocType)
	if name == "" || docType == "" {
		return document.UserDocument{}, fmt.Errorf("%w: doc_name and doc_type are required", ErrInvalidInput)
	}
	if in.FileSize < 0 {
		return document.UserDocument{}, fmt.Errorf("%w: file_size must not be negative", ErrInvalidInput)
	}
	mime := strings.TrimSpace(in.MimeType)
	if mime == "" {
		mime = document.DefaultMimeType
	}

	saved, err := s.docs.Create(ctx, document.UserDocument{
		UserID:   userID,
		DocName:  name,
		DocType:  docType,
		FilePath: document.StoragePath(userID, docType, in.FileName, s.now()),
		FileSize: in.FileSize,
		MimeType: mime,
	})
	if err != nil {
		s.logger.Error("register document", zap.String("user_id", userID.String()), zap.Error(err))
		return document.UserDocument{}, ErrInternal
	}
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (document.UserDocument, error) {
	d, err := s.docs.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return document.UserDocument{}, ErrDocumentNotFound
		}
		s.logger.Error("delete document", zap.String("document_id", id.String()), zap.Error(err))
		return document.UserDocument{}, ErrInternal
	}
	return d, nil
}

// CheckForPolicy reports which of the policy's required documents the user
// already holds.
func (s *Service) CheckForPolicy(ctx context.Context, userID, policyID uuid.UUID) ([]document.CheckItem, error) {
	p, err := s.policies.GetByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, policy.ErrNotFound) {
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("get policy", zap.String("policy_id", policyID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	mine, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return document.Check(p.RequiredDocuments, mine), nil
}

func (s *Service) Types() []string {
	out := make([]string, len(document.CommonDocTypes))
	copy(out, document.CommonDocTypes)
	return out
}
