// Package environment provides a small, mockable view of process
// environment variables for the credential providers that read them
// (static, config-file default profile, ECS gating).
package environment

import "os"

// Reader looks up environment variables. It exists so tests can substitute
// a fixed map instead of mutating the real process environment.
type Reader interface {
	// Lookup returns the value of the named variable and whether it was set.
	Lookup(name string) (string, bool)
}

// OS reads from the real process environment via os.LookupEnv, performing
// no caching: every call observes the environment as it is at call time.
type OS struct{}

// Lookup implements Reader.
func (OS) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Map is a fixed, in-memory Reader used by tests.
type Map map[string]string

// Lookup implements Reader.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
