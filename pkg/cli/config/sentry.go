package config

import (
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shears/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Sentry holds error tracking configuration
type Sentry struct {
	DSN string
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (error tracking disabled when empty)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("SHEARS_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Destination: &c.Env,
			Sources:     cli.EnvVars("SHEARS_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry SDK. Returns false when no DSN is
// configured.
func (c *Sentry) Configure() (bool, error) {
	if c.DSN == "" {
		return false, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     "shears@" + types.Version,
	}); err != nil {
		return false, goerr.Wrap(err, "failed to initialize sentry")
	}

	return true, nil
}
