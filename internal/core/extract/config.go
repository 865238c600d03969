package extract

import (
	"maintnotice/internal/core/profile"
	"maintnotice/internal/platform/config"
	"maintnotice/internal/platform/logger"
)

// FromConfig builds an Extractor over the built-in profile pack using the
// MAINTPARSE_ scope of cfg: PROFILES_FILE names an overlay pack and
// NORMALIZE toggles input cleanup
func FromConfig(cfg config.Conf) (*Extractor, error) {
	c := cfg.Prefix("MAINTPARSE_")

	reg, err := profile.Load()
	if err != nil {
		return nil, err
	}
	if path := c.MayFile("PROFILES_FILE"); path != "" {
		if err := reg.Overlay(path); err != nil {
			return nil, err
		}
		logger.Named("extract").Info().Str("path", path).Int("profiles", len(reg.List())).Msg("profile overlay applied")
	}
	return New(reg, Options{Normalize: c.MayBool("NORMALIZE", true)}), nil
}
