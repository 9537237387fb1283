package settings

// Theme is the presentation mode. The core does not interpret it.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Settings holds user preferences. Durations are in seconds.
type Settings struct {
	WorkDuration     int   `json:"work_duration"`
	ShortBreak       int   `json:"short_break"`
	LongBreak        int   `json:"long_break"`
	DailyGoal        int   `json:"daily_goal"`
	Theme            Theme `json:"theme"`
	SoundEnabled     bool  `json:"sound_enabled"`
	VibrationEnabled bool  `json:"vibration_enabled"`
}

// Patch updates the fields that are set.
type Patch struct {
	WorkDuration     *int
	ShortBreak       *int
	LongBreak        *int
	DailyGoal        *int
	Theme            *Theme
	SoundEnabled     *bool
	VibrationEnabled *bool
}

// Defaults returns the settings used before anything is saved.
func Defaults() Settings {
	return Settings{
		WorkDuration:     25 * 60,
		ShortBreak:       5 * 60,
		LongBreak:        15 * 60,
		DailyGoal:        4,
		Theme:            ThemeSystem,
		SoundEnabled:     true,
		VibrationEnabled: true,
	}
}

// Apply returns s with the patch applied and normalized.
func (s Settings) Apply(patch Patch) Settings {
	if patch.WorkDuration != nil {
		s.WorkDuration = *patch.WorkDuration
	}
	if patch.ShortBreak != nil {
		s.ShortBreak = *patch.ShortBreak
	}
	if patch.LongBreak != nil {
		s.LongBreak = *patch.LongBreak
	}
	if patch.DailyGoal != nil {
		s.DailyGoal = *patch.DailyGoal
	}
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	if patch.SoundEnabled != nil {
		s.SoundEnabled = *patch.SoundEnabled
	}
	if patch.VibrationEnabled != nil {
		s.VibrationEnabled = *patch.VibrationEnabled
	}
	return s.Normalize()
}

// Normalize clamps negative values to zero and replaces unknown themes.
func (s Settings) Normalize() Settings {
	s.WorkDuration = max(s.WorkDuration, 0)
	s.ShortBreak = max(s.ShortBreak, 0)
	s.LongBreak = max(s.LongBreak, 0)
	s.DailyGoal = max(s.DailyGoal, 0)
	if !s.Theme.Valid() {
		s.Theme = ThemeSystem
	}
	return s
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}
