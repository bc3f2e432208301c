package domain

const (
	TextSizeSmall  = "small"
	TextSizeMedium = "medium"
	TextSizeLarge  = "large"

	DefaultLanguage = "en"
)

// Preferences holds the per-user UI settings the client restores on load.
type Preferences struct {
	DarkMode bool   `json:"dark_mode"`
	Language string `json:"language"`
	TextSize string `json:"text_size"`
}

// DefaultPreferences is what a freshly registered account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		DarkMode: false,
		Language: DefaultLanguage,
		TextSize: TextSizeMedium,
	}
}

// PreferencesPatch carries a partial update; nil fields are left untouched.
type PreferencesPatch struct {
	DarkMode *bool
	Language *string
	TextSize *string
}

// Empty reports whether the patch changes nothing.
func (p PreferencesPatch) Empty() bool {
	return p.DarkMode == nil && p.Language == nil && p.TextSize == nil
}

// ValidTextSize reports whether s is an accepted text size.
func ValidTextSize(s string) bool {
	switch s {
	case TextSizeSmall, TextSizeMedium, TextSizeLarge:
		return true
	}
	return false
}

// Apply returns p with the non-nil fields of patch applied.
func (p Preferences) Apply(patch PreferencesPatch) Preferences {
	if patch.DarkMode != nil {
		p.DarkMode = *patch.DarkMode
	}
	if patch.Language != nil {
		p.Language = *patch.Language
	}
	if patch.TextSize != nil {
		p.TextSize = *patch.TextSize
	}
	return p
}
