package repositories

import (
	"context"
	"fmt"
	"time"

	"flowmarine/internal/models"

	"github.com/google/uuid"
)

type CertificateRepository interface {
	Create(ctx context.Context, certificate *models.Certificate) error
	ListByVessel(ctx context.Context, vesselID uuid.UUID) ([]*models.Certificate, error)
	ListExpiringBefore(ctx context.Context, cutoff time.Time, limit int) ([]*models.Certificate, error)
	Update(ctx context.Context, certificate *models.Certificate) error
}

type certificateRepo struct {
	db Database
}

func NewCertificateRepo(db Database) CertificateRepository {
	return &certificateRepo{db: db}
}

func (r *certificateRepo) Create(ctx context.Context, certificate *models.Certificate) error {
	query := `
		INSERT INTO certificates (id, vessel_id, convention, name, issued_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, certificate.ID, certificate.VesselID, certificate.Convention, certificate.Name, certificate.IssuedAt, certificate.ExpiresAt)
	return err
}

func (r *certificateRepo) ListByVessel(ctx context.Context, vesselID uuid.UUID) ([]*models.Certificate, error) {
	query := `
		SELECT id, vessel_id, convention, name, issued_at, expires_at, created_at, updated_at
		FROM certificates
		WHERE vessel_id = $1
		ORDER BY expires_at
	`
	rows, err := r.db.Query(ctx, query, vesselID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certificates []*models.Certificate
	for rows.Next() {
		cert := &models.Certificate{}
		if err := rows.Scan(&cert.ID, &cert.VesselID, &cert.Convention, &cert.Name, &cert.IssuedAt, &cert.ExpiresAt, &cert.CreatedAt, &cert.UpdatedAt); err != nil {
			return nil, err
		}
		certificates = append(certificates, cert)
	}
	return certificates, rows.Err()
}

func (r *certificateRepo) ListExpiringBefore(ctx context.Context, cutoff time.Time, limit int) ([]*models.Certificate, error) {
	query := `
		SELECT id, vessel_id, convention, name, issued_at, expires_at, created_at, updated_at
		FROM certificates
		WHERE expires_at < $1
		ORDER BY expires_at
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certificates []*models.Certificate
	for rows.Next() {
		cert := &models.Certificate{}
		if err := rows.Scan(&cert.ID, &cert.VesselID, &cert.Convention, &cert.Name, &cert.IssuedAt, &cert.ExpiresAt, &cert.CreatedAt, &cert.UpdatedAt); err != nil {
			return nil, err
		}
		certificates = append(certificates, cert)
	}
	return certificates, rows.Err()
}

func (r *certificateRepo) Update(ctx context.Context, certificate *models.Certificate) error {
	query := `
		UPDATE certificates
		SET convention = $1, name = $2, issued_at = $3, expires_at = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, certificate.Convention, certificate.Name, certificate.IssuedAt, certificate.ExpiresAt, certificate.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("certificate %s not found", certificate.ID)
	}
	return nil
}
