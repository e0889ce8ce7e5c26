package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/charleschoi123/bazi-destiny/models"
	"github.com/charleschoi123/bazi-destiny/store"
	"github.com/charleschoi123/bazi-destiny/timezone"
)

// Cache persists geocode entries. *store.Store implements it.
type Cache interface {
	Get(key string) (*models.GeocodeEntry, error)
	Create(e *models.GeocodeEntry) (*models.GeocodeEntry, bool, error)
	Update(key string, e *models.GeocodeEntry) (*models.GeocodeEntry, bool, error)
}

// Service resolves places through a cache in front of a Searcher.
type Service struct {
	search Searcher
	cache  Cache
	log    *zap.Logger
	group  singleflight.Group
}

// NewService returns a Service. A nil logger disables logging.
func NewService(s Searcher, c Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{search: s, cache: c, log: log.Named("geocode")}
}

// Key returns the cache key of a place: the normalized city and country
// joined by "|".
func Key(city, country string) string {
	return timezone.Normalize(city) + "|" + timezone.Normalize(country)
}

// Locate returns the cached entry for the place, geocoding and storing it on
// a miss. Concurrent misses for the same place share one upstream request.
func (s *Service) Locate(ctx context.Context, city, country string) (*models.GeocodeEntry, error) {
	city, country = strings.TrimSpace(city), strings.TrimSpace(country)
	if city == "" {
		return nil, fmt.Errorf("%w: empty city", ErrNotFound)
	}
	key := Key(city, country)

	if e, err := s.cache.Get(key); err == nil {
		s.log.Debug("cache hit", zap.String("key", key))
		return e, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	// The shared lookup outlives any single caller; each caller still stops
	// waiting when its own context ends.
	flight := s.group.DoChan(key, func() (any, error) {
		e, err := s.lookup(context.WithoutCancel(ctx), key, city, country)
		if err != nil {
			return nil, err
		}
		stored, created, err := s.cache.Create(e)
		if err != nil {
			s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			return e, nil
		}
		s.log.Info("geocoded place",
			zap.String("key", key),
			zap.String("zone", stored.Zone),
			zap.Bool("created", created))
		return stored, nil
	})

	select {
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.log.Debug("shared upstream lookup", zap.String("key", key))
		}
		return res.Val.(*models.GeocodeEntry), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Refresh geocodes the place again and updates the cached entry. The write
// is skipped when nothing changed; written reports whether it happened.
func (s *Service) Refresh(ctx context.Context, city, country string) (*models.GeocodeEntry, bool, error) {
	city, country = strings.TrimSpace(city), strings.TrimSpace(country)
	key := Key(city, country)
	e, err := s.lookup(ctx, key, city, country)
	if err != nil {
		return nil, false, err
	}
	updated, written, err := s.cache.Update(key, e)
	if errors.Is(err, store.ErrNotFound) {
		return s.cache.Create(e)
	}
	return updated, written, err
}

func (s *Service) lookup(ctx context.Context, key, city, country string) (*models.GeocodeEntry, error) {
	p, err := s.search.Search(ctx, city, country)
	if err != nil {
		return nil, err
	}
	e := &models.GeocodeEntry{
		Key:         key,
		City:        city,
		Country:     country,
		Lat:         p.Lat,
		Lon:         p.Lon,
		CountryCode: p.CountryCode,
		Display:     p.Display,
	}
	if z, ok := timezone.ZoneForCoordinates(p.CountryCode, p.Lat, p.Lon); ok {
		e.Zone = z.Name
	}
	return e, nil
}

// Zone returns the geocoded zone of e, if one was found.
func Zone(e *models.GeocodeEntry) (timezone.Zone, bool) {
	if e == nil || e.Zone == "" {
		return timezone.Zone{}, false
	}
	z, err := timezone.LoadZone(e.Zone, timezone.SourceGeocoded)
	if err != nil {
		return timezone.Zone{}, false
	}
	return z, true
}
