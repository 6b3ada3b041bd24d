package repositories

import (
	"context"
	"errors"
	"fmt"

	"flowmarine/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VesselRepository interface {
	Create(ctx context.Context, vessel *models.Vessel) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vessel, error)
	Update(ctx context.Context, vessel *models.Vessel) error
	List(ctx context.Context, limit, offset int) ([]*models.Vessel, error)
}

type vesselRepo struct {
	db Database
}

func NewVesselRepo(db Database) VesselRepository {
	return &vesselRepo{db: db}
}

func (r *vesselRepo) Create(ctx context.Context, vessel *models.Vessel) error {
	query := `
		INSERT INTO vessels (id, name, imo_number, flag, vessel_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, vessel.ID, vessel.Name, vessel.IMONumber, vessel.Flag, vessel.VesselType)
	return err
}

func (r *vesselRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vessel, error) {
	vessel := &models.Vessel{}
	query := `
		SELECT id, name, imo_number, flag, vessel_type, created_at, updated_at
		FROM vessels
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&vessel.ID, &vessel.Name, &vessel.IMONumber, &vessel.Flag, &vessel.VesselType, &vessel.CreatedAt, &vessel.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return vessel, nil
}

func (r *vesselRepo) Update(ctx context.Context, vessel *models.Vessel) error {
	query := `
		UPDATE vessels
		SET name = $1, imo_number = $2, flag = $3, vessel_type = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, vessel.Name, vessel.IMONumber, vessel.Flag, vessel.VesselType, vessel.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vessel %s not found", vessel.ID)
	}
	return nil
}

func (r *vesselRepo) List(ctx context.Context, limit, offset int) ([]*models.Vessel, error) {
	query := `
		SELECT id, name, imo_number, flag, vessel_type, created_at, updated_at
		FROM vessels
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vessels []*models.Vessel
	for rows.Next() {
		vessel := &models.Vessel{}
		if err := rows.Scan(&vessel.ID, &vessel.Name, &vessel.IMONumber, &vessel.Flag, &vessel.VesselType, &vessel.CreatedAt, &vessel.UpdatedAt); err != nil {
			return nil, err
		}
		vessels = append(vessels, vessel)
	}
	return vessels, rows.Err()
}
