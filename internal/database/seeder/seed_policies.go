package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"farm-policy/internal/database"
	"farm-policy/internal/domain/policy"
)

type PoliciesSeeder struct{}

func (PoliciesSeeder) Name() string { return "policies" }

type policySeed struct {
	Category          string
	Title             string
	Summary           string
	Description       string
	Eligibility       string
	Benefits          string
	RequiredDocuments []string
	ApplyURL          string
	ApplyMethod       string
	ContactInfo       string
	Department        string

	MinAge               *int
	MaxAge               *int
	MaxIncome            *int
	RequiredFarmArea     *int
	RequiredFarmingTypes []string
	RequiredRegion       *string
	RequiresEcoCert      bool

	Form *formSeed
}

type formSeed struct {
	Name   string
	Fields []policy.FormField
}

func iptr(v int) *int       { return &v }
func sptr(v string) *string { return &v }

var applicantFields = []policy.FormField{
	{ID: "name", Label: "성명", Type: policy.FieldText, ProfileKey: "name", Required: true},
	{ID: "birth_date", Label: "생년월일", Type: policy.FieldDate, ProfileKey: "birth_date", Required: true},
	{ID: "phone", Label: "연락처", Type: policy.FieldText, ProfileKey: "phone", Required: true, Placeholder: "010-0000-0000"},
	{ID: "address_sido", Label: "주소 (시/도)", Type: policy.FieldText, ProfileKey: "address_sido", Required: true},
	{ID: "address_sigungu", Label: "주소 (시/군/구)", Type: policy.FieldText, ProfileKey: "address_sigungu", Required: true},
	{ID: "address_detail", Label: "상세주소", Type: policy.FieldText, ProfileKey: "address_detail"},
}

func withApplicant(extra ...policy.FormField) []policy.FormField {
	out := make([]policy.FormField, 0, len(applicantFields)+len(extra))
	out = append(out, applicantFields...)
	return append(out, extra...)
}

var policySeeds = []policySeed{
	{
		Category:          "직불금",
		Title:             "공익직불제 (기본형 면적직불금)",
		Summary:           "농업·농촌의 공익기능 증진을 위해 농지 면적에 따라 직불금을 지급합니다.",
		Description:       "일정 요건을 충족하는 농업인에게 경작 면적 구간별 단가를 적용하여 직불금을 지급합니다.",
		Eligibility:       "농업경영체로 등록된 농업인, 농지 1,000㎡(약 300평) 이상 경작",
		Benefits:          "면적 구간별 ha당 136만~215만원",
		RequiredDocuments: []string{"농업경영체등록확인서", "농지원부", "통장사본"},
		ApplyURL:          "https://www.mafra.go.kr",
		ApplyMethod:       "주소지 읍·면·동 행정복지센터 방문 신청",
		ContactInfo:       "농림축산식품부 1577-1020",
		Department:        "농림축산식품부 공익직불정책과",
		RequiredFarmArea:  iptr(300),
		Form: &formSeed{
			Name: "공익직불금 등록신청서",
			Fields: withApplicant(
				policy.FormField{ID: "farm_registration_no", Label: "농업경영체 등록번호", Type: policy.FieldText, ProfileKey: "farm_registration_no", Required: true},
				policy.FormField{ID: "farm_area", Label: "경작 면적 (평)", Type: policy.FieldNumber, ProfileKey: "farm_area", Required: true},
				policy.FormField{ID: "crop_types", Label: "재배 작물", Type: policy.FieldText, ProfileKey: "crop_types"},
			),
		},
	},
	{
		Category:          "청년농업인",
		Title:             "청년창업농 영농정착 지원사업",
		Summary:           "영농 초기 청년농업인에게 최장 3년간 영농정착지원금을 지급합니다.",
		Description:       "독립 영농 경력 3년 이하 청년에게 월 최대 110만원의 정착지원금과 창업자금, 농지 우선 지원을 연계합니다.",
		Eligibility:       "만 18세 이상 40세 미만, 독립 영농 경력 3년 이하",
		Benefits:          "월 90만~110만원 (최장 3년)",
		RequiredDocuments: []string{"주민등록등본", "가족관계증명서", "영농계획서", "소득금액증명원"},
		ApplyURL:          "https://www.agrix.go.kr",
		ApplyMethod:       "농림사업정보시스템(AgriX) 온라인 신청",
		ContactInfo:       "시·군 농업기술센터",
		Department:        "농림축산식품부 경영인력과",
		MinAge:            iptr(18),
		MaxAge:            iptr(39),
		MaxIncome:         iptr(300),
		Form: &formSeed{
			Name: "청년창업농 선발 신청서",
			Fields: withApplicant(
				policy.FormField{ID: "farming_type", Label: "영농 형태", Type: policy.FieldSelect, ProfileKey: "farming_type", Required: true,
					Options: []string{"논농업", "밭농업", "과수", "축산", "시설원예", "특용작물", "임업", "기타"}},
				policy.FormField{ID: "household_members", Label: "가구원 수", Type: policy.FieldNumber, ProfileKey: "household_members"},
				policy.FormField{ID: "is_successor_farmer", Label: "후계농업인 선정 여부", Type: policy.FieldCheckbox, ProfileKey: "is_successor_farmer"},
				policy.FormField{ID: "plan", Label: "영농 계획", Type: policy.FieldTextarea, Required: true, Placeholder: "향후 3년 영농 계획을 작성하세요"},
			),
		},
	},
	{
		Category:             "농기계·시설",
		Title:                "농기계 임대사업",
		Summary:              "고가 농기계를 저렴한 임대료로 빌려 쓸 수 있습니다.",
		Description:          "시·군 농기계임대사업소에서 트랙터, 이앙기, 콤바인 등을 일 단위로 임대합니다.",
		Eligibility:          "관내 거주 농업인",
		Benefits:             "구입가격의 0.5% 내외 일 임대료",
		RequiredDocuments:    []string{"신분증사본", "농업경영체등록확인서"},
		ApplyMethod:          "시·군 농기계임대사업소 전화 또는 방문 예약",
		ContactInfo:          "시·군 농업기술센터",
		Department:           "농촌진흥청 농업기계화과",
		RequiredFarmingTypes: []string{"논농업", "밭농업", "과수"},
	},
	{
		Category:          "친환경농업",
		Title:             "친환경농업 직접지불",
		Summary:           "친환경 인증 농가의 소득 감소분을 보전합니다.",
		Description:       "유기·무농약 인증을 받은 농지에 대해 인증 종류와 작물별 단가로 직불금을 지급합니다.",
		Eligibility:       "친환경 인증(유기·무농약)을 받은 농업인",
		Benefits:          "ha당 논 50만~70만원, 밭 95만~140만원",
		RequiredDocuments: []string{"친환경인증서", "농업경영체등록확인서", "통장사본"},
		ApplyMethod:       "읍·면사무소 신청",
		ContactInfo:       "국립농산물품질관리원 1644-8448",
		Department:        "농림축산식품부 친환경농업과",
		RequiresEcoCert:   true,
	},
	{
		Category:          "연금·복지",
		Title:             "농어업인 국민연금보험료 지원",
		Summary:           "농어업인의 국민연금 보험료 일부를 국고에서 지원합니다.",
		Description:       "지역가입자 및 지역임의계속가입자인 농어업인에게 연금보험료의 최대 50%를 지원합니다.",
		Eligibility:       "만 18세 이상 60세 미만 농어업인, 농업외 종합소득 연 6,000만원 미만",
		Benefits:          "월 최대 46,350원",
		RequiredDocuments: []string{"농업경영체등록확인서", "소득금액증명원"},
		ApplyURL:          "https://www.nps.or.kr",
		ApplyMethod:       "국민연금공단 지사 또는 읍·면사무소",
		ContactInfo:       "국민연금공단 1355",
		Department:        "농림축산식품부 농촌복지여성과",
		MinAge:            iptr(18),
		MaxAge:            iptr(59),
		MaxIncome:         iptr(500),
	},
	{
		Category:          "재해·보험",
		Title:             "전남 농작물 재해보험료 추가 지원",
		Summary:           "전라남도 농가의 농작물 재해보험 자부담을 추가로 지원합니다.",
		Description:       "국비 50% 외에 도·시군비로 보험료 자부담분 일부를 지원합니다.",
		Eligibility:       "전라남도 거주 농업인",
		Benefits:          "보험료 자부담분의 최대 30%",
		RequiredDocuments: []string{"주민등록등본", "농업경영체등록확인서"},
		ApplyMethod:       "지역 농·축협 방문",
		ContactInfo:       "전라남도청 061-286-6000",
		Department:        "전라남도 친환경농업과",
		RequiredRegion:    sptr("전라남도"),
	},
}

func (PoliciesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "policies",
		"id", "category_id", "title", "required_documents", "min_age", "max_age",
		"max_income", "required_farm_area", "required_farming_types", "required_region",
		"requires_eco_cert", "is_active",
	); err != nil {
		return err
	}
	if err := requireColumns(ctx, db, "policy_form_templates", "policy_id", "form_name", "fields"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, p := range policySeeds {
			if err := seedPolicy(ctx, tx, p); err != nil {
				return fmt.Errorf("%s: %w", p.Title, err)
			}
		}
		return nil
	})
}

func seedPolicy(ctx context.Context, tx database.Tx, p policySeed) error {
	if _, err := tx.Exec(ctx,
		`INSERT INTO policies (
			category_id, title, summary, description, eligibility, benefits, required_documents,
			apply_url, apply_method, contact_info, department,
			min_age, max_age, max_income, required_farm_area, required_farming_types, required_region, requires_eco_cert
		)
		SELECT (SELECT id FROM policy_categories WHERE name = $1), $2::text, $3::text, $4::text, $5::text, $6::text,
			$7::text[], $8::text, $9::text, $10::text, $11::text,
			$12::int, $13::int, $14::int, $15::int, $16::text[], $17::text, $18::boolean
		WHERE NOT EXISTS (SELECT 1 FROM policies WHERE title = $2 AND api_source IS NULL)`,
		p.Category, p.Title, p.Summary, p.Description, p.Eligibility, p.Benefits, p.RequiredDocuments,
		p.ApplyURL, p.ApplyMethod, p.ContactInfo, p.Department,
		p.MinAge, p.MaxAge, p.MaxIncome, p.RequiredFarmArea, p.RequiredFarmingTypes, p.RequiredRegion, p.RequiresEcoCert,
	); err != nil {
		return err
	}

	if p.Form == nil {
		return nil
	}
	fields, err := json.Marshal(p.Form.Fields)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO policy_form_templates (policy_id, form_name, fields)
		 SELECT id, $2::text, $3::jsonb FROM policies WHERE title = $1 AND api_source IS NULL
		 ON CONFLICT (policy_id) DO NOTHING`,
		p.Title, p.Form.Name, string(fields),
	)
	return err
}
