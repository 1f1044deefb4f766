package config

import "math/rand"

// userAgents is a small pool of desktop Chrome user agents. Rotating them per
// job keeps repeated runs from presenting an identical fingerprint.
var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
}

// UserAgentProvider returns the user agent for the next job.
type UserAgentProvider func() string

// NewUserAgentProvider builds a provider backed by its own rand source so
// tests can seed it deterministically.
func NewUserAgentProvider(seed int64) UserAgentProvider {
	rng := rand.New(rand.NewSource(seed))
	return func() string {
		return userAgents[rng.Intn(len(userAgents))]
	}
}
