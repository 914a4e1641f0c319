package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/healthassist/healthassist/types"
	"go.uber.org/zap"
)

// ErrCaloriesNotComputed is returned by ComputeMealPrep when the daily
// calorie target has not been derived yet.
var ErrCaloriesNotComputed = errors.New("daily calories must be calculated before meal prep")

// RecordStore defines the record operations the engine depends on.
type RecordStore interface {
	Find(name string) (*types.UserRecord, error)
	Names() []string
	Load(path string) error
}

// Publisher sends derived-metric events to a broker channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// DerivedMetrics is the outcome of a full derivation for one record. It is
// also the payload of published events.
type DerivedMetrics struct {
	Name          string        `json:"name"`
	BodyFat       types.BodyFat `json:"body_fat"`
	DailyCalories float64       `json:"daily_calories"`
	CarbsG        float64       `json:"carbs_g"`
	ProteinG      float64       `json:"protein_g"`
	FatG          float64       `json:"fat_g"`
}

// HealthService derives health metrics for records held by a store.
type HealthService struct {
	store     RecordStore
	logger    *zap.Logger
	publisher Publisher
	channel   string
}

func NewHealthService(store RecordStore, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{store: store, logger: logger}
}

// WithPublisher makes BulkDerive publish one event per record to channel.
func (s *HealthService) WithPublisher(publisher Publisher, channel string) *HealthService {
	s.publisher = publisher
	s.channel = channel
	return s
}

// ComputeBodyFat estimates and classifies the body fat of the named user and
// stores the result on the record.
func (s *HealthService) ComputeBodyFat(name string) (types.BodyFat, error) {
	rec, err := s.store.Find(name)
	if err != nil {
		return types.BodyFat{}, err
	}

	bfp, err := BodyFatPercentage(rec.Gender, rec.WaistCm, rec.NeckCm, rec.HeightCm, rec.HipCm)
	if err != nil {
		return types.BodyFat{}, fmt.Errorf("user %s: %w", name, err)
	}
	rec.BodyFat = types.BodyFat{
		Percentage: bfp,
		Group:      ClassifyBodyFat(rec.Gender, rec.Age, bfp),
	}

	s.logger.Debug("body fat computed",
		zap.String("name", name),
		zap.Float64("percentage", rec.BodyFat.Percentage),
		zap.String("group", rec.BodyFat.Group),
	)
	return rec.BodyFat, nil
}

// ComputeDailyCalories stores the recommended daily calorie intake of the
// named user on the record.
func (s *HealthService) ComputeDailyCalories(name string) (int, error) {
	rec, err := s.store.Find(name)
	if err != nil {
		return 0, err
	}

	calories := DailyCalories(rec.Gender, rec.Age, rec.Lifestyle)
	rec.DailyCalories = float64(calories)

	s.logger.Debug("daily calories computed", zap.String("name", name), zap.Int("calories", calories))
	return calories, nil
}

// ComputeMealPrep stores the macronutrient split of the named user's calorie
// target. The record is left untouched when no target has been computed.
func (s *HealthService) ComputeMealPrep(name string) error {
	rec, err := s.store.Find(name)
	if err != nil {
		return err
	}
	if rec.DailyCalories == 0 {
		return fmt.Errorf("user %s: %w", name, ErrCaloriesNotComputed)
	}

	rec.CarbsG, rec.ProteinG, rec.FatG = Macros(rec.DailyCalories)
	return nil
}

// BulkDerive loads the table at path and runs every derivation for each
// record in traversal order. Records are addressed by name, so only the
// first of several same-named records is derived.
//
// A failing step does not stop the remaining steps or records; every error
// is joined into the returned error and each found record is still part of
// the results.
func (s *HealthService) BulkDerive(ctx context.Context, path string) ([]DerivedMetrics, error) {
	if err := s.store.Load(path); err != nil {
		return nil, err
	}

	var (
		results []DerivedMetrics
		errs    []error
	)
	for _, name := range s.store.Names() {
		metrics, err := s.derive(name)
		if err != nil {
			errs = append(errs, err)
		}
		if metrics == nil {
			continue
		}
		results = append(results, *metrics)
		// Only fully derived records are published.
		if err == nil {
			s.publish(ctx, *metrics)
		}
	}

	s.logger.Debug("bulk derivation finished",
		zap.String("path", path),
		zap.Int("derived", len(results)),
		zap.Int("failed", len(errs)),
	)
	return results, errors.Join(errs...)
}

// derive runs every derivation step for name, even after a step fails, and
// returns whatever the record holds afterwards. The metrics are nil only when
// the record cannot be found.
func (s *HealthService) derive(name string) (*DerivedMetrics, error) {
	rec, err := s.store.Find(name)
	if err != nil {
		return nil, err
	}

	var errs []error
	if _, err := s.ComputeBodyFat(name); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.ComputeDailyCalories(name); err != nil {
		errs = append(errs, err)
	}
	if err := s.ComputeMealPrep(name); err != nil {
		errs = append(errs, err)
	}

	return &DerivedMetrics{
		Name:          rec.Name,
		BodyFat:       rec.BodyFat,
		DailyCalories: rec.DailyCalories,
		CarbsG:        rec.CarbsG,
		ProteinG:      rec.ProteinG,
		FatG:          rec.FatG,
	}, errors.Join(errs...)
}

func (s *HealthService) publish(ctx context.Context, metrics DerivedMetrics) {
	if s.publisher == nil {
		return
	}

	data, err := json.Marshal(metrics)
	if err != nil {
		s.logger.Warn("encode derived metrics", zap.String("name", metrics.Name), zap.Error(err))
		return
	}
	attrs := map[string]string{"name": metrics.Name, "content_type": "application/json"}
	id, err := s.publisher.Publish(ctx, s.channel, data, attrs)
	if err != nil {
		s.logger.Warn("publish derived metrics", zap.String("name", metrics.Name), zap.Error(err))
		return
	}
	s.logger.Debug("derived metrics published", zap.String("name", metrics.Name), zap.String("message_id", id))
}
