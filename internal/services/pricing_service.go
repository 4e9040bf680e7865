// internal/services/pricing_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/slabdesk/slabdesk-backend/internal/models"
)

// PricingService resolves market values for catalog cards. Lookups are
// best-effort: callers treat failures as "no price" rather than errors.
type PricingService struct {
	db       *gorm.DB
	redis    *redis.Client // nil when Redis is disabled
	cacheTTL time.Duration
}

type marketQuote struct {
	AssetID     uuid.UUID `json:"asset_id"`
	MarketValue float64   `json:"market_value"`
	QuotedAt    time.Time `json:"quoted_at"`
}

func NewPricingService(db *gorm.DB, redisClient *redis.Client, cacheTTL time.Duration) *PricingService {
	return &PricingService{
		db:       db,
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

// MarketValue returns the current market value for a global asset,
// served from the Redis cache when possible.
func (s *PricingService) MarketValue(ctx context.Context, assetID uuid.UUID) (float64, error) {
	if quote, ok := s.cachedQuote(ctx, assetID); ok {
		return quote.MarketValue, nil
	}

	var asset models.GlobalAsset
	if err := s.db.WithContext(ctx).Select("id", "market_value").First(&asset, "id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to fetch asset price: %w", err)
	}

	s.cacheQuote(ctx, marketQuote{
		AssetID:     assetID,
		MarketValue: asset.MarketValue,
		QuotedAt:    time.Now(),
	})

	return asset.MarketValue, nil
}

// RefreshAfter schedules a fire-and-forget price refresh for an asset.
// It recomputes the market value from recent completed purchases and
// rewrites the cache entry.
func (s *PricingService) RefreshAfter(assetID uuid.UUID, delay time.Duration) {
	go func() {
		time.Sleep(delay)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.refresh(ctx, assetID); err != nil {
			logrus.WithError(err).WithField("asset_id", assetID).Warn("Price refresh failed")
		}
	}()
}

func (s *PricingService) refresh(ctx context.Context, assetID uuid.UUID) error {
	var avg struct {
		Value float64
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&models.PurchaseTransaction{}).
		Select("COALESCE(AVG(market_price), 0) AS value, COUNT(*) AS count").
		Where("global_asset_id = ? AND purchased_at > ?", assetID, time.Now().AddDate(0, -3, 0)).
		Scan(&avg).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate recent purchases: %w", err)
	}

	// No recent sales: leave the catalog value alone, just re-cache it.
	if avg.Count > 0 {
		err = s.db.WithContext(ctx).Model(&models.GlobalAsset{}).
			Where("id = ?", assetID).
			UpdateColumn("market_value", avg.Value).Error
		if err != nil {
			return fmt.Errorf("failed to update market value: %w", err)
		}
	}

	var asset models.GlobalAsset
	if err := s.db.WithContext(ctx).Select("id", "market_value").First(&asset, "id = ?", assetID).Error; err != nil {
		return fmt.Errorf("failed to reload asset: %w", err)
	}

	s.cacheQuote(ctx, marketQuote{
		AssetID:     assetID,
		MarketValue: asset.MarketValue,
		QuotedAt:    time.Now(),
	})

	return nil
}

func (s *PricingService) cachedQuote(ctx context.Context, assetID uuid.UUID) (*marketQuote, bool) {
	if s.redis == nil {
		return nil, false
	}

	val, err := s.redis.Get(ctx, quoteKey(assetID)).Result()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Debug("Price cache read failed")
		}
		return nil, false
	}

	var quote marketQuote
	if err := json.Unmarshal([]byte(val), &quote); err != nil {
		return nil, false
	}
	return &quote, true
}

func (s *PricingService) cacheQuote(ctx context.Context, quote marketQuote) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(quote)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, quoteKey(quote.AssetID), payload, s.cacheTTL).Err(); err != nil {
		logrus.WithError(err).Debug("Price cache write failed")
	}
}

func quoteKey(assetID uuid.UUID) string {
	return fmt.Sprintf("market_quote:%s", assetID)
}
