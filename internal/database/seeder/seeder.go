package seeder

import (
	"context"

	"farm-policy/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
