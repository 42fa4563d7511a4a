// Package raw is a tiny env reader with zero project dependencies.
// It exists so early-boot packages (logger) can read config without
// importing the full config package and creating a cycle
package raw

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Conf reads environment variables under an optional prefix
type Conf struct {
	prefix string
}

// New returns a Conf rooted at the empty prefix
func New() Conf { return Conf{} }

// Prefix returns a view that prepends p to every key lookup
func (c Conf) Prefix(p string) Conf {
	return Conf{prefix: c.prefix + p}
}

func (c Conf) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(c.prefix + key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Get returns the value for key or def when unset
func (c Conf) Get(key, def string) string {
	if v, ok := c.lookup(key); ok && v != "" {
		return v
	}
	return def
}

// GetBool parses 1/t/true/y/yes/on as true, everything else as false
func (c Conf) GetBool(key string, def bool) bool {
	v, ok := c.lookup(key)
	if !ok || v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt returns def when the value is unset or unparseable
func (c Conf) GetInt(key string, def int) int {
	v, ok := c.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetDuration accepts Go duration strings ("30s", "2m")
func (c Conf) GetDuration(key string, def time.Duration) time.Duration {
	v, ok := c.lookup(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
