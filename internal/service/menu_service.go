package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stormkid2009/restooo/internal/domain"
	"github.com/stormkid2009/restooo/internal/events"
	"github.com/stormkid2009/restooo/internal/observability"
	"github.com/stormkid2009/restooo/internal/repository"
	apperrors "github.com/stormkid2009/restooo/pkg/util"
)

const menuCacheKey = "menu:items"

// MenuService manages the menu with a redis read-through cache.
type MenuService struct {
	repo       repository.MenuRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewMenuService builds the service. A nil cache client disables caching.
func NewMenuService(repo repository.MenuRepository, cache *redis.Client, cacheTTL time.Duration, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *MenuService {
	return &MenuService{
		repo:       repo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// List returns all menu items, served from cache when possible. Cache
// failures fall back to Postgres.
func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, menuCacheKey).Bytes()
		if err == nil {
			var items []domain.MenuItem
			if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
				s.metrics.RecordMenuCacheHit()
				return items, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Debug("menu cache read failed", zap.Error(err))
		}
	}
	s.metrics.RecordMenuCacheMiss()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, menuCacheKey, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Debug("menu cache write failed", zap.Error(err))
			}
		}
	}
	return items, nil
}

// Create adds a menu item and invalidates the cache.
func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}
	s.afterWrite(ctx, item.ID, "created")
	return nil
}

// Update modifies a menu item and invalidates the cache.
func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Menu item")
		}
		return err
	}
	s.afterWrite(ctx, item.ID, "updated")
	return nil
}

// Delete removes a menu item and invalidates the cache.
func (s *MenuService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Menu item")
		}
		return err
	}
	s.afterWrite(ctx, id, "deleted")
	return nil
}

func (s *MenuService) afterWrite(ctx context.Context, itemID, action string) {
	if s.cache != nil {
		if err := s.cache.Del(ctx, menuCacheKey).Err(); err != nil {
			s.logger.Debug("menu cache invalidation failed", zap.Error(err))
		}
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventMenuChanged,
			Payload: events.MenuChangedPayload{ItemID: itemID, Action: action},
		})
	}
}
