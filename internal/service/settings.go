package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/internal/repository"
)

// SettingsService implements the business logic for store settings.
type SettingsService struct {
	settings repository.SettingsRepository
	logger   *slog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settings repository.SettingsRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: logger}
}

// Get returns the current store settings.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// Update validates and persists new store settings.
func (s *SettingsService) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if settings.SiteName == "" {
		return domain.Settings{}, apperrors.InvalidInput("site name is required")
	}
	p := settings.Pricing
	if p.Mode != domain.PricingModeThreshold && p.Mode != domain.PricingModeTiered {
		return domain.Settings{}, apperrors.InvalidInput(fmt.Sprintf("unknown pricing mode %q", p.Mode))
	}
	if p.ShippingCost < 0 {
		return domain.Settings{}, apperrors.InvalidInput("shipping cost must not be negative")
	}
	if p.Margin <= 0 || p.LowMargin <= 0 || p.HighMargin <= 0 {
		return domain.Settings{}, apperrors.InvalidInput("margins must be greater than 0")
	}
	if p.MinBasePrice < 0 || p.AbsorptionThreshold < 0 {
		return domain.Settings{}, apperrors.InvalidInput("price thresholds must not be negative")
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.logger.InfoContext(ctx, "settings updated",
		slog.String("pricing_mode", string(settings.Pricing.Mode)),
	)

	return settings, nil
}
