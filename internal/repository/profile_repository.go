package repository

import (
	"context"
	"time"

	"farm-policy/internal/database"
	"farm-policy/internal/domain/profile"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.FarmerProfile, error)
	Upsert(ctx context.Context, p profile.FarmerProfile) (profile.FarmerProfile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, name, birth_date, phone, address_sido, address_sigungu, address_detail,
	farm_area, crop_types, farming_type, farm_registration_no, household_members, annual_income,
	is_eco_certified, is_successor_farmer, created_at, updated_at`

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.FarmerProfile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID))
	if err != nil {
		if database.IsNoRows(err) {
			return profile.FarmerProfile{}, profile.ErrNotFound
		}
		return profile.FarmerProfile{}, err
	}
	return p, nil
}

// Upsert inserts or replaces the profile owned by p.UserID.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, p profile.FarmerProfile) (profile.FarmerProfile, error) {
	var birth *time.Time
	if !p.BirthDate.IsZero() {
		b := p.BirthDate
		birth = &b
	}
	crops := p.CropTypes
	if crops == nil {
		crops = []string{}
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO user_profiles (
			user_id, name, birth_date, phone, address_sido, address_sigungu, address_detail,
			farm_area, crop_types, farming_type, farm_registration_no, household_members, annual_income,
			is_eco_certified, is_successor_farmer
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			birth_date = EXCLUDED.birth_date,
			phone = EXCLUDED.phone,
			address_sido = EXCLUDED.address_sido,
			address_sigungu = EXCLUDED.address_sigungu,
			address_detail = EXCLUDED.address_detail,
			farm_area = EXCLUDED.farm_area,
			crop_types = EXCLUDED.crop_types,
			farming_type = EXCLUDED.farming_type,
			farm_registration_no = EXCLUDED.farm_registration_no,
			household_members = EXCLUDED.household_members,
			annual_income = EXCLUDED.annual_income,
			is_eco_certified = EXCLUDED.is_eco_certified,
			is_successor_farmer = EXCLUDED.is_successor_farmer,
			updated_at = now()
		RETURNING `+profileColumns,
		p.UserID, p.Name, birth, p.Phone, p.AddressSido, p.AddressSigungu, p.AddressDetail,
		p.FarmArea, crops, p.FarmingType, p.FarmRegistrationNo, p.HouseholdMembers, p.AnnualIncome,
		p.IsEcoCertified, p.IsSuccessorFarmer,
	)
	return scanProfile(row)
}

func scanProfile(row database.Row) (profile.FarmerProfile, error) {
	var (
		p     profile.FarmerProfile
		birth *time.Time
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &birth, &p.Phone, &p.AddressSido, &p.AddressSigungu, &p.AddressDetail,
		&p.FarmArea, &p.CropTypes, &p.FarmingType, &p.FarmRegistrationNo, &p.HouseholdMembers, &p.AnnualIncome,
		&p.IsEcoCertified, &p.IsSuccessorFarmer, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return profile.FarmerProfile{}, err
	}
	if birth != nil {
		p.BirthDate = *birth
	}
	if p.CropTypes == nil {
		p.CropTypes = []string{}
	}
	return p, nil
}
