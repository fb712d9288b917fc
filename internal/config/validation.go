package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
)

// Validate checks the configuration after defaults have been applied and
// canonicalizes enum fields in place.
func (c *Config) Validate() error {
	var err error
	if c.Build.GenericPages, err = genericNormalizer.NormalizeWithError(string(c.Build.GenericPages)); err != nil {
		return validationError("build.generic_pages", err)
	}
	if c.Build.DuplicateLabels, err = duplicateNormalizer.NormalizeWithError(string(c.Build.DuplicateLabels)); err != nil {
		return validationError("build.duplicate_labels", err)
	}
	if c.Logging.Level, err = logLevelNormalizer.NormalizeWithError(string(c.Logging.Level)); err != nil {
		return validationError("logging.level", err)
	}
	if c.Logging.Format, err = logFormatNormalizer.NormalizeWithError(string(c.Logging.Format)); err != nil {
		return validationError("logging.format", err)
	}

	assets := map[string]string{
		"site.stylesheet":      c.Site.Stylesheet,
		"site.tab_script":      c.Site.TabScript,
		"site.math_stylesheet": c.Site.MathStylesheet,
		"site.math_script":     c.Site.MathScript,
	}
	for field, ref := range assets {
		if !isAbsoluteRef(ref) {
			return validationError(field, fmt.Errorf("asset reference %q must be an absolute path or URL", ref))
		}
	}
	return nil
}

func isAbsoluteRef(ref string) bool {
	return strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://")
}

func validationError(field string, err error) error {
	return errors.WrapError(err, errors.CategoryValidation, "invalid configuration value").
		WithContext("field", field).
		Build()
}
