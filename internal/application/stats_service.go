package application

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

const careLevelStatsKey = "stats:care-levels"

// Cache stores JSON values with a TTL.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type CareLevelCount struct {
	Level   entity.CareLevel `json:"level"`
	Count   int              `json:"count"`
	Percent float64          `json:"percent"`
}

type CareLevelStats struct {
	Total  int              `json:"total"`
	Levels []CareLevelCount `json:"levels"`
}

// StatsService serves the care-level chart. Counts are cached for TTL and
// dropped whenever a resident is written.
type StatsService struct {
	Residents repository.ResidentRepository
	Cache     Cache
	TTL       time.Duration
	Logger    *logrus.Logger
}

func NewStatsService(residents repository.ResidentRepository, cache Cache, ttl time.Duration, logger *logrus.Logger) *StatsService {
	return &StatsService{Residents: residents, Cache: cache, TTL: ttl, Logger: logger}
}

func (s *StatsService) CareLevels(ctx context.Context) (CareLevelStats, error) {
	var cached CareLevelStats
	if s.Cache != nil {
		ok, err := s.Cache.GetJSON(ctx, careLevelStatsKey, &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", careLevelStatsKey).Warn("stats cache read failed")
		}
		if ok && err == nil {
			return cached, nil
		}
	}

	counts, err := s.Residents.CountByCareLevel(ctx)
	if err != nil {
		return CareLevelStats{}, fromRepo(err)
	}
	out := summarize(counts)

	if s.Cache != nil && s.TTL > 0 {
		if err := s.Cache.SetJSON(ctx, careLevelStatsKey, out, s.TTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", careLevelStatsKey).Warn("stats cache write failed")
		}
	}
	return out, nil
}

// Invalidate drops the cached chart.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s == nil || s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, careLevelStatsKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", careLevelStatsKey).Warn("stats cache delete failed")
	}
}

func summarize(counts map[entity.CareLevel]int) CareLevelStats {
	out := CareLevelStats{Levels: make([]CareLevelCount, 0, len(entity.CareLevels))}
	for _, l := range entity.CareLevels {
		out.Total += counts[l]
	}
	for _, l := range entity.CareLevels {
		c := CareLevelCount{Level: l, Count: counts[l]}
		if out.Total > 0 {
			c.Percent = math.Round(float64(c.Count)*1000/float64(out.Total)) / 10
		}
		out.Levels = append(out.Levels, c)
	}
	return out
}
