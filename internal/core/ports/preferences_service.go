package ports

import (
	"context"

	"github.com/guardianlink/portal/internal/core/domain"
)

// PreferencesService reads and updates per-user UI settings.
type PreferencesService interface {
	Get(ctx context.Context, userID string) (domain.Preferences, error)
	Update(ctx context.Context, userID string, patch domain.PreferencesPatch) (domain.Preferences, error)
}
