package game

// Awards is the XP amount table per action kind. The table is configuration:
// the engine never decides how much an action is worth, only how XP turns
// into levels.
type Awards struct {
	Application int `mapstructure:"application" yaml:"application"`
	View        int `mapstructure:"view" yaml:"view"`
	Letter      int `mapstructure:"letter" yaml:"letter"`
	Rejection   int `mapstructure:"rejection" yaml:"rejection"`
	Interview   int `mapstructure:"interview" yaml:"interview"`
}

// ForecastTier maps a minimum success rate onto a message. Tiers are checked
// in order, so they must be sorted by descending MinRate with a catch-all
// MinRate 0 last.
type ForecastTier struct {
	MinRate int    `mapstructure:"min_rate" yaml:"min_rate"`
	Message string `mapstructure:"message" yaml:"message"`
}

// Forecast holds the success-forecast messages.
type Forecast struct {
	NoApplications string         `mapstructure:"no_applications" yaml:"no_applications"`
	Tiers          []ForecastTier `mapstructure:"tiers" yaml:"tiers"`
}

// Config tunes the gamification engine.
type Config struct {
	XPPerLevel int      `mapstructure:"xp_per_level" yaml:"xp_per_level"`
	Awards     Awards   `mapstructure:"awards" yaml:"awards"`
	Forecast   Forecast `mapstructure:"forecast" yaml:"forecast"`
}

// DefaultConfig returns the stock progression table.
func DefaultConfig() Config {
	return Config{
		XPPerLevel: 500,
		Awards: Awards{
			Application: 10,
			View:        50,
			Letter:      5,
			Rejection:   5,
			Interview:   100,
		},
		Forecast: Forecast{
			NoApplications: "No applications yet. Apply to a few vacancies to see your forecast.",
			Tiers: []ForecastTier{
				{MinRate: 50, Message: "Excellent results! Employers respond to you well above average."},
				{MinRate: 30, Message: "Good results. Keep applying and refine your resume for even better response."},
				{MinRate: 15, Message: "Decent start. Try tailoring your cover letters to each vacancy."},
				{MinRate: 0, Message: "Responses are slow so far. Review your resume and target more relevant vacancies."},
			},
		},
	}
}

// withDefaults fills zero-valued fields from DefaultConfig so a partial
// config file still yields a working engine.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.XPPerLevel <= 0 {
		c.XPPerLevel = def.XPPerLevel
	}
	if c.Awards == (Awards{}) {
		c.Awards = def.Awards
	}
	if c.Forecast.NoApplications == "" {
		c.Forecast.NoApplications = def.Forecast.NoApplications
	}
	if len(c.Forecast.Tiers) == 0 {
		c.Forecast.Tiers = def.Forecast.Tiers
	}
	return c
}
