package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// SettingsService reads and writes the confidence threshold
type SettingsService struct {
	store  SettingsStore
	logger *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(store SettingsStore, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		store:  store,
		logger: logger,
	}
}

// Threshold returns the saved threshold, or DefaultThreshold if none was saved
func (s *SettingsService) Threshold(ctx context.Context) (float64, error) {
	raw, err := s.store.Get(ctx, ThresholdKey)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return DefaultThreshold, nil
		}
		return DefaultThreshold, fmt.Errorf("failed to read threshold: %w", err)
	}

	var threshold float64
	if err := json.Unmarshal(raw, &threshold); err != nil {
		s.logger.Warn("Ignoring unreadable stored threshold",
			zap.ByteString("value", raw),
			zap.Error(err))
		return DefaultThreshold, nil
	}
	if !validThreshold(threshold) {
		s.logger.Warn("Ignoring out of range stored threshold", zap.Float64("threshold", threshold))
		return DefaultThreshold, nil
	}
	return threshold, nil
}

// ParseThreshold validates user input for the threshold field
func ParseThreshold(input string) (float64, error) {
	threshold, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidThreshold, input)
	}
	if !validThreshold(threshold) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return threshold, nil
}

// Save validates input and persists it. Invalid input never reaches the store.
func (s *SettingsService) Save(ctx context.Context, input string) (float64, error) {
	threshold, err := ParseThreshold(input)
	if err != nil {
		s.logger.Debug("Rejected threshold input", zap.String("input", input))
		return 0, err
	}

	raw, err := json.Marshal(threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to encode threshold: %w", err)
	}
	if err := s.store.Set(ctx, ThresholdKey, raw); err != nil {
		return 0, fmt.Errorf("failed to save threshold: %w", err)
	}

	s.logger.Info("Saved threshold", zap.Float64("threshold", threshold))
	return threshold, nil
}

// Reset removes the saved threshold so the default applies again
func (s *SettingsService) Reset(ctx context.Context) error {
	if err := s.store.Delete(ctx, ThresholdKey); err != nil {
		return fmt.Errorf("failed to reset threshold: %w", err)
	}
	return nil
}

func validThreshold(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 1
}
