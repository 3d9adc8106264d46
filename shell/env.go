package shell

import "os"

// Environment reads process environment variables.
type Environment struct {
	lookup func(string) (string, bool)
}

func NewEnvironment() *Environment {
	return &Environment{lookup: os.LookupEnv}
}

func (this *Environment) LookupEnv(key string) (value string, set bool) {
	return this.lookup(key)
}
