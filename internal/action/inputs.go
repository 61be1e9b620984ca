package action

import (
	"os"
	"strings"
)

// Inputs supplies named workflow inputs. The boolean reports whether the
// input was provided at all.
type Inputs interface {
	Input(name string) (string, bool)
}

// EnvInputs reads inputs the way the GitHub Actions runner passes them:
// INPUT_<NAME> with spaces replaced by underscores.
type EnvInputs struct {
	Lookup func(key string) (string, bool)
}

// NewEnvInputs reads from the process environment.
func NewEnvInputs() EnvInputs {
	return EnvInputs{Lookup: os.LookupEnv}
}

func (e EnvInputs) Input(name string) (string, bool) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(EnvName(name))
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// EnvName returns the environment variable that carries input name.
func EnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// MapInputs is a fixed set of inputs.
type MapInputs map[string]string

func (m MapInputs) Input(name string) (string, bool) {
	v, ok := m[name]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Chain returns the first provided value across providers.
type Chain []Inputs

func (c Chain) Input(name string) (string, bool) {
	for _, in := range c {
		if in == nil {
			continue
		}
		if v, ok := in.Input(name); ok {
			return v, true
		}
	}
	return "", false
}
