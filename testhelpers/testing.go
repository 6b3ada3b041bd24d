package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"flowmarine/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=flowmarine_test sslmode=disable"
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestVessel creates a test vessel for testing
func SetupTestVessel(t *testing.T, db *TestDB) uuid.UUID {
	t.Helper()

	vesselID := uuid.New()
	query := `
		INSERT INTO vessels (id, name, imo_number, flag, vessel_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (imo_number) DO NOTHING
	`
	_, err := db.Pool.Exec(context.Background(), query, vesselID, "MV Test Vessel", "9876543", "PA", "BULK_CARRIER", time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vessel: %v", err)
	}

	return vesselID
}

// SetupTestVendor creates an active, approved vendor for testing
func SetupTestVendor(t *testing.T, db *TestDB) *models.Vendor {
	t.Helper()

	email := "quotes@testvendor.example"
	score := 8.0
	vendor := &models.Vendor{
		ID:               uuid.New(),
		Name:             "Test Marine Supplies",
		ContactEmail:     &email,
		IsActive:         true,
		IsApproved:       true,
		OverallScore:     &score,
		ServiceCountries: []string{"Singapore"},
		ServicePorts:     []string{"SGSIN"},
		PortCapabilities: []string{"delivery", "spare_parts"},
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	query := `
		INSERT INTO vendors (id, name, contact_email, email, phone, is_active, is_approved, overall_score, service_countries, service_ports, port_capabilities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		vendor.ID, vendor.Name, vendor.ContactEmail, vendor.Email, vendor.Phone,
		vendor.IsActive, vendor.IsApproved, vendor.OverallScore,
		vendor.ServiceCountries, vendor.ServicePorts, vendor.PortCapabilities,
		vendor.CreatedAt, vendor.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test vendor: %v", err)
	}

	return vendor
}

// SetupTestUser creates a test user with the given role
func SetupTestUser(t *testing.T, db *TestDB, role string, vesselID *uuid.UUID) *models.User {
	t.Helper()

	user := &models.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@flowmarine.test",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		VesselID:  vesselID,
		Status:    "active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, vessel_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		user.ID, user.Email, "test-hash", user.FirstName, user.LastName,
		user.Role, user.VesselID, user.Status, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CleanupTestData removes rows created by the helpers above
func CleanupTestData(t *testing.T, db *TestDB) {
	t.Helper()

	ctx := context.Background()
	tables := []string{"notifications", "audit_logs", "quotes", "rfq_vendors", "rfqs", "requisition_items", "requisitions", "certificates", "vendors", "users", "vessels"}
	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Logf("Failed to clean table %s: %v", table, err)
		}
	}
}
