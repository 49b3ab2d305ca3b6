// Package env provides the variable sources used by $NAME substitution.
package env

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Lookuper resolves environment variables.
type Lookuper interface {
	LookupEnv(key string) (string, bool)
}

// Getenv returns the value of key in l, or the empty string if unset.
func Getenv(l Lookuper, key string) string {
	val, _ := l.LookupEnv(key)
	return val
}

// OS reads the interpreter's own process environment.
type OS struct{}

var _ Lookuper = OS{}

// LookupEnv implements Lookuper.LookupEnv.
func (OS) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// NewMapEnv creates a new environment backed by a map.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates an environment from KEY=VALUE pairs. Entries
// without '=' are set to the empty string.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}

	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out.Setenv(key, value)
	}

	return out
}

// MapEnv implements an in-memory Lookuper.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ Lookuper = (*MapEnv)(nil)

// Setenv sets key to value.
func (m *MapEnv) Setenv(key, value string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
}

// Unsetenv removes key.
func (m *MapEnv) Unsetenv(key string) {
	m.rw.Lock()
	defer m.rw.Unlock()
	delete(m.env, key)
}

// LookupEnv implements Lookuper.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Environ returns the variables as sorted KEY=VALUE pairs.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	var env []string
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	return env
}
