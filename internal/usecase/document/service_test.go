package document

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"farm-policy/internal/domain/document"
	"farm-policy/internal/domain/policy"

	"github.com/google/uuid"
)

type mockDocs struct {
	items []document.UserDocument
}

func (m *mockDocs) ListByUser(_ context.Context, userID uuid.UUID) ([]document.UserDocument, error) {
	out := make([]document.UserDocument, 0)
	for _, d := range m.items {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDocs) Create(_ context.Context, d document.UserDocument) (document.UserDocument, error) {
	d.ID = uuid.New()
	m.items = append(m.items, d)
	return d, nil
}

func (m *mockDocs) Delete(_ context.Context, userID, id uuid.UUID) (document.UserDocument, error) {
	for i, d := range m.items {
		if d.ID == id && d.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return d, nil
		}
	}
	return document.UserDocument{}, document.ErrNotFound
}

type mockPolicies struct {
	p policy.Policy
}

func (m mockPolicies) ListCategories(context.Context) ([]policy.Category, error) { return nil, nil }

func (m mockPolicies) ListActive(context.Context, policy.Filter) ([]policy.Policy, error) {
	return nil, nil
}

func (m mockPolicies) GetByID(_ context.Context, id uuid.UUID) (policy.Policy, error) {
	if id != m.p.ID {
		return policy.Policy{}, policy.ErrNotFound
	}
	return m.p, nil
}

func (m mockPolicies) GetFormTemplate(context.Context, uuid.UUID) (*policy.FormTemplate, error) {
	return nil, nil
}

func (m mockPolicies) UpsertExternal(context.Context, policy.Policy) (bool, error) { return false, nil }

func TestRegister_BuildsStoragePath(t *testing.T) {
	svc := NewService(&mockDocs{}, mockPolicies{}, nil)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	uid := uuid.New()

	d, err := svc.Register(context.Background(), uid, RegisterInput{
		DocName:  " 농지원부 ",
		DocType:  "농지원부",
		FileName: "scan.jpg",
		FileSize: 2048,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.FilePath != uid.String()+"/1700000000000_농지원부.jpg" {
		t.Fatalf("unexpected path %s", d.FilePath)
	}
	if d.DocName != "농지원부" || d.MimeType != document.DefaultMimeType {
		t.Fatalf("unexpected document %+v", d)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(&mockDocs{}, mockPolicies{}, nil)
	for _, in := range []RegisterInput{
		{DocType: "x"},
		{DocName: "x"},
		{DocName: "x", DocType: "y", FileSize: -1},
	} {
		if _, err := svc.Register(context.Background(), uuid.New(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestDelete_OnlyOwner(t *testing.T) {
	docs := &mockDocs{}
	svc := NewService(docs, mockPolicies{}, nil)
	owner := uuid.New()
	d, err := svc.Register(context.Background(), owner, RegisterInput{DocName: "a", DocType: "b"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Delete(context.Background(), uuid.New(), d.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if _, err := svc.Delete(context.Background(), owner, d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestCheckForPolicy(t *testing.T) {
	p := policy.Policy{ID: uuid.New(), RequiredDocuments: []string{"농업경영체 등록확인서", "통장 사본", "영농계획서"}}
	uid := uuid.New()
	docs := &mockDocs{items: []document.UserDocument{
		{ID: uuid.New(), UserID: uid, DocName: "내 통장", DocType: "통장사본"},
		{ID: uuid.New(), UserID: uid, DocName: "경영체", DocType: "농업경영체등록확인서"},
		{ID: uuid.New(), UserID: uuid.New(), DocName: "영농계획서", DocType: "영농계획서"},
	}}
	svc := NewService(docs, mockPolicies{p: p}, nil)

	items, err := svc.CheckForPolicy(context.Background(), uid, p.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if !items[0].HasDocument || !items[1].HasDocument || items[2].HasDocument {
		t.Fatalf("unexpected checklist %+v", items)
	}
	if items[1].UserDocument.DocType != "통장사본" {
		t.Fatalf("unexpected match %+v", items[1].UserDocument)
	}

	if _, err := svc.CheckForPolicy(context.Background(), uid, uuid.New()); !errors.Is(err, ErrPolicyNotFound) {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}
}

func TestTypes_ReturnsCopy(t *testing.T) {
	svc := NewService(&mockDocs{}, mockPolicies{}, nil)
	types := svc.Types()
	types[0] = "changed"
	if strings.EqualFold(document.CommonDocTypes[0], "changed") {
		t.Fatalf("Types must not expose the shared slice")
	}
}
