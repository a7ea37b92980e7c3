package jsonfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
)

func TestSettingsRepository_DefaultsWhenMissing(t *testing.T) {
	repo := NewSettingsRepository(t.TempDir())

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestSettingsRepository_SaveAndGet(t *testing.T) {
	repo := NewSettingsRepository(t.TempDir())
	ctx := context.Background()

	s := domain.DefaultSettings()
	s.SiteName = "Mercadito"
	s.Pricing.Mode = domain.PricingModeThreshold
	s.Pricing.ShippingCost = 12000
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
