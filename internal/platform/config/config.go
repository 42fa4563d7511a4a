// Package config is the env-only configuration surface.
//
// Values come exclusively from the process environment (optionally seeded
// from a .env file by main). Accessors come in two flavors: Must* fatals
// when the key is missing, May* returns a default
package config

import (
	"strings"
	"time"

	"taskpulse/internal/platform/config/raw"
	"taskpulse/internal/platform/logger"
)

// Conf is a prefix-scoped view over the environment
type Conf struct {
	rc raw.Conf
}

// New returns the root Conf
func New() Conf { return Conf{rc: raw.New()} }

// Prefix narrows the view, e.g. New().Prefix("SERVICE_PGSQL_")
func (c Conf) Prefix(p string) Conf {
	return Conf{rc: c.rc.Prefix(p)}
}

// MustString fatals when key is unset or empty
func (c Conf) MustString(key string) string {
	v := c.rc.Get(key, "")
	if v == "" {
		logger.Get().Fatal().Str("key", key).Msg("config: required key missing")
	}
	return v
}

// MayString returns def when key is unset or empty
func (c Conf) MayString(key, def string) string {
	return c.rc.Get(key, def)
}

// MayBool returns def when key is unset
func (c Conf) MayBool(key string, def bool) bool {
	return c.rc.GetBool(key, def)
}

// MayInt returns def when key is unset or unparseable
func (c Conf) MayInt(key string, def int) int {
	return c.rc.GetInt(key, def)
}

// MayDuration returns def when key is unset or unparseable
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return c.rc.GetDuration(key, def)
}

// MayCSV splits a comma-separated value, trimming blanks
func (c Conf) MayCSV(key string, def []string) []string {
	v := c.rc.Get(key, "")
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
