package service

import (
	"context"
	"fmt"

	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

type preferencesService struct {
	users     ports.UserRepository
	languages map[string]struct{}
}

// NewPreferencesService returns a PreferencesService accepting the given
// language codes.
func NewPreferencesService(users ports.UserRepository, languages []string) ports.PreferencesService {
	set := make(map[string]struct{}, len(languages))
	for _, l := range languages {
		set[l] = struct{}{}
	}
	return &preferencesService{users: users, languages: set}
}

func (s *preferencesService) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}
	return withDefaults(user.Preferences), nil
}

func (s *preferencesService) Update(ctx context.Context, userID string, patch domain.PreferencesPatch) (domain.Preferences, error) {
	if patch.Language != nil {
		if _, ok := s.languages[*patch.Language]; !ok {
			return domain.Preferences{}, fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidPreference, *patch.Language)
		}
	}
	if patch.TextSize != nil && !domain.ValidTextSize(*patch.TextSize) {
		return domain.Preferences{}, fmt.Errorf("%w: unsupported text size %q", domain.ErrInvalidPreference, *patch.TextSize)
	}

	if patch.Empty() {
		return s.Get(ctx, userID)
	}

	stored, err := s.users.UpdatePreferences(ctx, userID, patch)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("update preferences: %w", err)
	}
	return withDefaults(stored), nil
}

// withDefaults fills fields missing from documents written before they existed.
func withDefaults(p domain.Preferences) domain.Preferences {
	d := domain.DefaultPreferences()
	if p.Language == "" {
		p.Language = d.Language
	}
	if p.TextSize == "" {
		p.TextSize = d.TextSize
	}
	return p
}
