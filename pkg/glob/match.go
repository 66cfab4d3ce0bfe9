package glob

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
)

// Match reports whether name matches the single-component pattern. A star
// matches any sequence of characters within one path component and never
// crosses a separator. A malformed pattern always errors, even for names
// the underlying matcher would reject before reaching the malformed part.
func Match(pattern, name string) (bool, error) {
	if err := ValidatePattern(pattern); err != nil {
		return false, err
	}
	return doublestar.Match(pattern, name)
}

// ValidatePattern checks that a single pattern is well formed for the
// component matcher.
func ValidatePattern(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return nil
}

// ValidatePatterns checks every pattern, aggregating one error per bad one.
func ValidatePatterns(patterns []string) error {
	var mErr multierror.Error
	for _, pattern := range patterns {
		if err := ValidatePattern(pattern); err != nil {
			mErr.Errors = append(mErr.Errors, err)
		}
	}
	return mErr.ErrorOrNil()
}
