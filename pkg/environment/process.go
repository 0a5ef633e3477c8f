package environment

import "os"

// LookupFunc looks a key up in an environment table, reporting whether the
// key was present.
type LookupFunc func(key string) (string, bool)

// Process is a read-only capability over a process environment table. The
// zero value resolves nothing; use NewProcess for the real table or
// NewProcessFromLookup to inject a table in tests.
type Process struct {
	lookup LookupFunc
}

// NewProcess returns a Process backed by the environment table of the
// current OS process.
func NewProcess() Process {
	return Process{lookup: os.LookupEnv}
}

// NewProcessFromLookup returns a Process backed by the given lookup
// function instead of the real environment table.
func NewProcessFromLookup(lookup LookupFunc) Process {
	return Process{lookup: lookup}
}

// Get returns the value of the named variable. Unset variables are not an
// error; ok is false and the value empty.
func (p Process) Get(key string) (value string, ok bool) {
	if p.lookup == nil {
		return "", false
	}
	return p.lookup(key)
}

// Get is a passthrough lookup into the environment table of the current
// process. No caching, no mutation.
func Get(key string) (string, bool) {
	return os.LookupEnv(key)
}
