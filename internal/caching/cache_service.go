package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"flowmarine/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Vendor caching
	GetVendor(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error)
	SetVendor(ctx context.Context, vendor *models.Vendor, ttl time.Duration) error
	DeleteVendor(ctx context.Context, vendorID uuid.UUID) error

	// RFQ caching
	GetRFQ(ctx context.Context, rfqID uuid.UUID) (*models.RFQ, error)
	SetRFQ(ctx context.Context, rfq *models.RFQ, ttl time.Duration) error
	DeleteRFQ(ctx context.Context, rfqID uuid.UUID) error

	// Compliance report caching
	GetComplianceReport(ctx context.Context, vesselID uuid.UUID) (*models.ComplianceReport, error)
	SetComplianceReport(ctx context.Context, report *models.ComplianceReport, ttl time.Duration) error

	// Cache invalidation
	InvalidateAllCache(ctx context.Context) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
		parsedAddr = hostPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetVendor(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	key := fmt.Sprintf("flowmarine:vendor:%s", vendorID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var vendor models.Vendor
	if err := json.Unmarshal(data, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *redisCacheService) SetVendor(ctx context.Context, vendor *models.Vendor, ttl time.Duration) error {
	key := fmt.Sprintf("flowmarine:vendor:%s", vendor.ID.String())
	data, err := json.Marshal(vendor)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteVendor(ctx context.Context, vendorID uuid.UUID) error {
	key := fmt.Sprintf("flowmarine:vendor:%s", vendorID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetRFQ(ctx context.Context, rfqID uuid.UUID) (*models.RFQ, error) {
	key := fmt.Sprintf("flowmarine:rfq:%s", rfqID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var rfq models.RFQ
	if err := json.Unmarshal(data, &rfq); err != nil {
		return nil, err
	}
	return &rfq, nil
}

func (r *redisCacheService) SetRFQ(ctx context.Context, rfq *models.RFQ, ttl time.Duration) error {
	key := fmt.Sprintf("flowmarine:rfq:%s", rfq.ID.String())
	data, err := json.Marshal(rfq)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteRFQ(ctx context.Context, rfqID uuid.UUID) error {
	key := fmt.Sprintf("flowmarine:rfq:%s", rfqID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetComplianceReport(ctx context.Context, vesselID uuid.UUID) (*models.ComplianceReport, error) {
	key := fmt.Sprintf("flowmarine:compliance:%s", vesselID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var report models.ComplianceReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *redisCacheService) SetComplianceReport(ctx context.Context, report *models.ComplianceReport, ttl time.Duration) error {
	key := fmt.Sprintf("flowmarine:compliance:%s", report.VesselID.String())
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	pattern := "flowmarine:*"
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("flowmarine:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
