package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"farm-policy/internal/database"
	"farm-policy/internal/domain/policy"

	"github.com/google/uuid"
)

type PolicyRepository interface {
	ListCategories(ctx context.Context) ([]policy.Category, error)
	ListActive(ctx context.Context, f policy.Filter) ([]policy.Policy, error)
	GetByID(ctx context.Context, id uuid.UUID) (policy.Policy, error)
	GetFormTemplate(ctx context.Context, policyID uuid.UUID) (*policy.FormTemplate, error)
	UpsertExternal(ctx context.Context, p policy.Policy) (bool, error)
}

type PostgresPolicyRepository struct {
	db database.DB
}

func NewPostgresPolicyRepository(db database.DB) *PostgresPolicyRepository {
	return &PostgresPolicyRepository{db: db}
}

const policySelect = `SELECT p.id, p.category_id, p.title, p.summary, p.description, p.eligibility, p.benefits,
	p.required_documents, p.apply_start_date, p.apply_end_date, p.apply_url, p.apply_method,
	p.contact_info, p.department, p.api_source, p.external_id,
	p.min_age, p.max_age, p.min_income, p.max_income, p.required_farm_area,
	p.required_farming_types, p.required_region, p.requires_eco_cert, p.is_active, p.created_at,
	c.id, COALESCE(c.name, ''), COALESCE(c.icon, ''), COALESCE(c.description, ''), COALESCE(c.color, ''), COALESCE(c.sort_order, 0)
FROM policies p
LEFT JOIN policy_categories c ON c.id = p.category_id`

func (r *PostgresPolicyRepository) ListCategories(ctx context.Context) ([]policy.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, icon, description, color, sort_order FROM policy_categories ORDER BY sort_order ASC, name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]policy.Category, 0)
	for rows.Next() {
		var c policy.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Description, &c.Color, &c.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns active policies, newest first.
func (r *PostgresPolicyRepository) ListActive(ctx context.Context, f policy.Filter) ([]policy.Policy, error) {
	where := []string{"p.is_active = true"}
	args := make([]any, 0, 2)

	if f.CategoryID != uuid.Nil {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.summary ILIKE $%d OR p.description ILIKE $%d)", n, n, n))
	}

	query := policySelect + "\nWHERE " + strings.Join(where, " AND ") + "\nORDER BY p.created_at DESC, p.id ASC"
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]policy.Policy, 0)
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (policy.Policy, error) {
	p, err := scanPolicy(r.db.QueryRow(ctx, policySelect+"\nWHERE p.id = $1", id))
	if err != nil {
		if database.IsNoRows(err) {
			return policy.Policy{}, policy.ErrNotFound
		}
		return policy.Policy{}, err
	}
	return p, nil
}

// GetFormTemplate returns nil without error when the policy has no template.
func (r *PostgresPolicyRepository) GetFormTemplate(ctx context.Context, policyID uuid.UUID) (*policy.FormTemplate, error) {
	var (
		t      policy.FormTemplate
		fields []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, policy_id, form_name, fields FROM policy_form_templates WHERE policy_id = $1`,
		policyID,
	).Scan(&t.ID, &t.PolicyID, &t.FormName, &fields)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &t.Fields); err != nil {
			return nil, fmt.Errorf("decode form fields: %w", err)
		}
	}
	if t.Fields == nil {
		t.Fields = []policy.FormField{}
	}
	return &t, nil
}

// UpsertExternal stores a policy imported from a public API, keyed by
// (api_source, external_id). Imported rows start inactive so they never reach
// the matcher before a curator fills in the rule fields. It reports whether a
// row was inserted or its content changed.
func (r *PostgresPolicyRepository) UpsertExternal(ctx context.Context, p policy.Policy) (bool, error) {
	if p.APISource == nil || *p.APISource == "" || p.ExternalID == "" {
		return false, fmt.Errorf("external policy needs api_source and external_id")
	}
	n, err := r.db.Exec(ctx,
		`INSERT INTO policies (title, summary, description, apply_url, contact_info, department, api_source, external_id, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)
		 ON CONFLICT (api_source, external_id) DO UPDATE SET
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			description = EXCLUDED.description,
			apply_url = EXCLUDED.apply_url,
			contact_info = EXCLUDED.contact_info,
			department = EXCLUDED.department,
			updated_at = now()
		 WHERE (policies.title, policies.summary, policies.description, policies.apply_url, policies.contact_info, policies.department)
			IS DISTINCT FROM (EXCLUDED.title, EXCLUDED.summary, EXCLUDED.description, EXCLUDED.apply_url, EXCLUDED.contact_info, EXCLUDED.department)`,
		p.Title, p.Summary, p.Description, p.ApplyURL, p.ContactInfo, p.Department, *p.APISource, p.ExternalID,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanPolicy(row database.Row) (policy.Policy, error) {
	var (
		p          policy.Policy
		categoryID *uuid.UUID
		externalID *string
		region     *string
		catID      *uuid.UUID
		cat        policy.Category
	)
	err := row.Scan(
		&p.ID, &categoryID, &p.Title, &p.Summary, &p.Description, &p.Eligibility, &p.Benefits,
		&p.RequiredDocuments, &p.ApplyStartDate, &p.ApplyEndDate, &p.ApplyURL, &p.ApplyMethod,
		&p.ContactInfo, &p.Department, &p.APISource, &externalID,
		&p.MinAge, &p.MaxAge, &p.MinIncome, &p.MaxIncome, &p.RequiredFarmArea,
		&p.RequiredFarmingTypes, &region, &p.RequiresEcoCert, &p.IsActive, &p.CreatedAt,
		&catID, &cat.Name, &cat.Icon, &cat.Description, &cat.Color, &cat.SortOrder,
	)
	if err != nil {
		return policy.Policy{}, err
	}

	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	if externalID != nil {
		p.ExternalID = *externalID
	}
	if region != nil {
		p.RequiredRegion = *region
	}
	if catID != nil {
		cat.ID = *catID
		p.Category = &cat
	}
	if p.RequiredDocuments == nil {
		p.RequiredDocuments = []string{}
	}
	return p, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
