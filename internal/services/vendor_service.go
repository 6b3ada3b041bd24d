package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"flowmarine/internal/caching"
	"flowmarine/internal/common"
	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
)

const vendorCacheTTL = 15 * time.Minute

type VendorServiceInterface interface {
	CreateVendor(ctx context.Context, vendor *models.Vendor, actorID uuid.UUID) (*models.Vendor, error)
	GetVendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	UpdateVendor(ctx context.Context, vendor *models.Vendor, actorID uuid.UUID) (*models.Vendor, error)
	DeleteVendor(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	ListVendors(ctx context.Context, filter *models.VendorSearchFilter) ([]*models.Vendor, error)
}

type vendorService struct {
	vendorRepo repositories.VendorRepository
	auditSvc   AuditLogsService
	cacheSvc   caching.CacheService
}

func NewVendorService(vendorRepo repositories.VendorRepository, auditSvc AuditLogsService, cacheSvc caching.CacheService) VendorServiceInterface {
	return &vendorService{vendorRepo: vendorRepo, auditSvc: auditSvc, cacheSvc: cacheSvc}
}

func (s *vendorService) CreateVendor(ctx context.Context, vendor *models.Vendor, actorID uuid.UUID) (*models.Vendor, error) {
	if vendor.Name == "" {
		return nil, common.NewAppError("vendor name is required", http.StatusBadRequest, "INVALID_VENDOR")
	}
	if vendor.NotificationAddress() == "" {
		log.Printf("vendor %q created without a notification address", vendor.Name)
	}
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}
	s.auditVendor(ctx, vendor.ID, models.ActionCreate, &actorID, nil, models.JSONB{
		"name":        vendor.Name,
		"is_active":   vendor.IsActive,
		"is_approved": vendor.IsApproved,
	})
	return vendor, nil
}

func (s *vendorService) GetVendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetVendor(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch vendor %s: %w", id, err)
	}
	if vendor == nil {
		return nil, common.NewAppError("vendor not found", http.StatusNotFound, common.CodeVendorNotFound)
	}
	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetVendor(ctx, vendor, vendorCacheTTL); err != nil {
			log.Printf("cache vendor %s: %v", id, err)
		}
	}
	return vendor, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, vendor *models.Vendor, actorID uuid.UUID) (*models.Vendor, error) {
	existing, err := s.vendorRepo.GetByID(ctx, vendor.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch vendor %s: %w", vendor.ID, err)
	}
	if existing == nil {
		return nil, common.NewAppError("vendor not found", http.StatusNotFound, common.CodeVendorNotFound)
	}
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, fmt.Errorf("update vendor %s: %w", vendor.ID, err)
	}
	s.invalidateVendorCache(ctx, vendor.ID)
	s.auditVendor(ctx, vendor.ID, models.ActionUpdate, &actorID,
		models.JSONB{
			"name":          existing.Name,
			"is_active":     existing.IsActive,
			"is_approved":   existing.IsApproved,
			"overall_score": common.SafeFloat64(existing.OverallScore),
		},
		models.JSONB{
			"name":          vendor.Name,
			"is_active":     vendor.IsActive,
			"is_approved":   vendor.IsApproved,
			"overall_score": common.SafeFloat64(vendor.OverallScore),
		})
	return vendor, nil
}

func (s *vendorService) DeleteVendor(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	existing, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch vendor %s: %w", id, err)
	}
	if existing == nil {
		return common.NewAppError("vendor not found", http.StatusNotFound, common.CodeVendorNotFound)
	}
	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete vendor %s: %w", id, err)
	}
	s.invalidateVendorCache(ctx, id)
	s.auditVendor(ctx, id, models.ActionDelete, &actorID, models.JSONB{"name": existing.Name}, nil)
	return nil
}

func (s *vendorService) ListVendors(ctx context.Context, filter *models.VendorSearchFilter) ([]*models.Vendor, error) {
	if filter == nil {
		filter = &models.VendorSearchFilter{}
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.vendorRepo.List(ctx, filter)
}

func (s *vendorService) invalidateVendorCache(ctx context.Context, id uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteVendor(ctx, id); err != nil {
		log.Printf("invalidate vendor cache %s: %v", id, err)
	}
}

func (s *vendorService) auditVendor(ctx context.Context, id uuid.UUID, action string, userID *uuid.UUID, oldValues, newValues models.JSONB) {
	if err := s.auditSvc.LogActivity(ctx, "vendor", id.String(), action, userID, oldValues, newValues, nil); err != nil {
		log.Printf("audit %s on vendor %s: %v", action, id, err)
	}
}
