package render

import "github.com/Scalingo/sclng-profile-readme/config"

func NewOptions(cfg config.ProfileConfig) Options {
	return Options{
		IconBaseURL:  cfg.IconBaseURL,
		StatsBaseURL: cfg.StatsBaseURL,
		Theme:        cfg.Theme,
	}
}
