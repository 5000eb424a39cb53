package seeder

import (
	"context"

	"farm-policy/internal/database"
)

type CategoriesSeeder struct{}

func (CategoriesSeeder) Name() string { return "policy_categories" }

type categorySeed struct {
	Name        string
	Icon        string
	Description string
	Color       string
}

var categorySeeds = []categorySeed{
	{Name: "직불금", Icon: "💰", Description: "공익직불제 등 소득 보전 지원", Color: "#16a34a"},
	{Name: "청년농업인", Icon: "🌱", Description: "청년 창업농 및 후계농 육성", Color: "#0ea5e9"},
	{Name: "농기계·시설", Icon: "🚜", Description: "농기계 임대 및 시설 현대화", Color: "#f59e0b"},
	{Name: "친환경농업", Icon: "🍀", Description: "친환경 인증 농가 지원", Color: "#22c55e"},
	{Name: "연금·복지", Icon: "🏥", Description: "농어민 연금 및 생활 복지", Color: "#8b5cf6"},
	{Name: "재해·보험", Icon: "🌧️", Description: "농작물 재해보험 및 복구 지원", Color: "#ef4444"},
}

func (CategoriesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "policy_categories", "id", "name", "icon", "description", "color", "sort_order"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for i, c := range categorySeeds {
			if _, err := tx.Exec(ctx,
				`INSERT INTO policy_categories (name, icon, description, color, sort_order)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (name) DO NOTHING`,
				c.Name, c.Icon, c.Description, c.Color, i+1,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
