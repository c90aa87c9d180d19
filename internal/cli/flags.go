package cli

import (
	"fmt"
	"time"

	"github.com/HamzaOussama/plantX/internal/config"
	"github.com/HamzaOussama/plantX/internal/errors"
)

// ParseInterval parses the --interval flag. Empty returns zero so the
// config value applies.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 3s, 10s, or 1m.")
	}
	if d < config.MinPollInterval {
		return 0, errors.New(errors.ErrConfig,
			"Interval too short",
			fmt.Sprintf("Minimum interval is %s to avoid hammering the API.", config.MinPollInterval))
	}
	return d, nil
}
