package repositories

import (
	"context"
	"errors"
	"fmt"

	"flowmarine/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	GetActiveApprovedByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.VendorSearchFilter) ([]*models.Vendor, error)
	FindEligible(ctx context.Context, criteria *models.VendorSelectionCriteria) ([]*models.Vendor, error)
}

type vendorRepo struct {
	db Database
}

func NewVendorRepo(db Database) VendorRepository {
	return &vendorRepo{db: db}
}

const vendorColumns = `id, name, contact_email, email, phone, is_active, is_approved, overall_score, service_countries, service_ports, port_capabilities, created_at, updated_at`

func scanVendor(row pgx.Row) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	err := row.Scan(&vendor.ID, &vendor.Name, &vendor.ContactEmail, &vendor.Email, &vendor.Phone, &vendor.IsActive, &vendor.IsApproved, &vendor.OverallScore, &vendor.ServiceCountries, &vendor.ServicePorts, &vendor.PortCapabilities, &vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *vendorRepo) Create(ctx context.Context, vendor *models.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, contact_email, email, phone, is_active, is_approved, overall_score, service_countries, service_ports, port_capabilities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, vendor.ID, vendor.Name, vendor.ContactEmail, vendor.Email, vendor.Phone, vendor.IsActive, vendor.IsApproved, vendor.OverallScore, vendor.ServiceCountries, vendor.ServicePorts, vendor.PortCapabilities)
	return err
}

func (r *vendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	vendor, err := scanVendor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return vendor, nil
}

// GetActiveApprovedByIDs resolves the subset of ids that are backed by an
// active, approved vendor. Callers diff the result against the request to
// report exactly which ids were invalid.
func (r *vendorRepo) GetActiveApprovedByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Vendor, error) {
	query := `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE id = ANY($1) AND is_active = true AND is_approved = true
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}

func (r *vendorRepo) Update(ctx context.Context, vendor *models.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $1, contact_email = $2, email = $3, phone = $4, is_active = $5, is_approved = $6, overall_score = $7, service_countries = $8, service_ports = $9, port_capabilities = $10, updated_at = NOW()
		WHERE id = $11
	`
	tag, err := r.db.Exec(ctx, query, vendor.Name, vendor.ContactEmail, vendor.Email, vendor.Phone, vendor.IsActive, vendor.IsApproved, vendor.OverallScore, vendor.ServiceCountries, vendor.ServicePorts, vendor.PortCapabilities, vendor.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vendor %s not found", vendor.ID)
	}
	return nil
}

func (r *vendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM vendors WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *vendorRepo) List(ctx context.Context, filter *models.VendorSearchFilter) ([]*models.Vendor, error) {
	queryBase := `SELECT ` + vendorColumns + ` FROM vendors WHERE 1=1`
	args := []any{}
	conditionCount := 0

	if filter.Query != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND name ILIKE $%d`, conditionCount)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.IsActive != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND is_active = $%d`, conditionCount)
		args = append(args, *filter.IsActive)
	}
	if filter.IsApproved != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND is_approved = $%d`, conditionCount)
		args = append(args, *filter.IsApproved)
	}
	if filter.MinScore != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND overall_score >= $%d`, conditionCount)
		args = append(args, *filter.MinScore)
	}
	if filter.Country != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND $%d = ANY(service_countries)`, conditionCount)
		args = append(args, *filter.Country)
	}

	queryBase += ` ORDER BY name`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}

// FindEligible returns active approved vendors matching the selection
// criteria. Each filter is applied only when the criterion is non-empty.
func (r *vendorRepo) FindEligible(ctx context.Context, criteria *models.VendorSelectionCriteria) ([]*models.Vendor, error) {
	queryBase := `SELECT ` + vendorColumns + ` FROM vendors WHERE is_active = true AND is_approved = true`
	args := []any{}
	conditionCount := 0

	if criteria.MinRating > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` AND overall_score >= $%d`, conditionCount)
		args = append(args, criteria.MinRating)
	}
	if len(criteria.Countries) > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` AND service_countries && $%d`, conditionCount)
		args = append(args, criteria.Countries)
	}
	if len(criteria.PortCodes) > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` AND service_ports && $%d`, conditionCount)
		args = append(args, criteria.PortCodes)
	}
	if len(criteria.Capabilities) > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` AND port_capabilities && $%d`, conditionCount)
		args = append(args, criteria.Capabilities)
	}

	queryBase += ` ORDER BY overall_score DESC NULLS LAST`

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}
