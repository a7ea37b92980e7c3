package jsonfile

import (
	"context"
	"os"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
)

// SettingsRepository implements repository.SettingsRepository on a JSON file.
type SettingsRepository struct {
	store *store[domain.Settings]
}

// NewSettingsRepository creates a JSON-file-backed settings repository
// rooted at dataDir.
func NewSettingsRepository(dataDir string) *SettingsRepository {
	return &SettingsRepository{store: newStore[domain.Settings](dataDir, "settings.json")}
}

// Get returns the stored settings, falling back to the defaults when the
// file does not exist yet.
func (r *SettingsRepository) Get(_ context.Context) (domain.Settings, error) {
	if _, err := os.Stat(r.store.path); os.IsNotExist(err) {
		return domain.DefaultSettings(), nil
	}
	return r.store.read()
}

// Save persists the given settings.
func (r *SettingsRepository) Save(_ context.Context, settings domain.Settings) error {
	return r.store.write(settings)
}
