// Package environment identifies the runtime environment a process was
// started in (production, development, testing, or a custom name) and
// exposes read-only access to the process environment table. It is the
// first thing a gregal application resolves on startup: the detected
// environment decides which configuration file is loaded and how the
// server is bootstrapped.
package environment

import "os"

// Canonical environment names.
const (
	ProductionName  = "production"
	DevelopmentName = "development"
	TestingName     = "testing"
)

// Environment is a named runtime mode carrying the argument vector it was
// constructed with. The name is fixed at construction time. Two
// environments are equal when their names match; the argument vector and
// the build mode never participate in equality.
type Environment struct {
	name string
	args []string
}

// New creates an environment with the given name and argument vector.
// The first element of args is conventionally the executable path.
func New(name string, args []string) Environment {
	return Environment{name: name, args: append([]string(nil), args...)}
}

// Production returns the production environment with the current process
// arguments.
func Production() Environment {
	return New(ProductionName, os.Args)
}

// Development returns the development environment with the current process
// arguments. Development is the default when nothing selects an
// environment explicitly.
func Development() Environment {
	return New(DevelopmentName, os.Args)
}

// Testing returns the testing environment with the current process
// arguments.
func Testing() Environment {
	return New(TestingName, os.Args)
}

// Custom returns an environment with an arbitrary name and the current
// process arguments. The name is not validated; the empty string is
// accepted.
func Custom(name string) Environment {
	return New(name, os.Args)
}

// FromName maps a name to its canonical environment with the current
// process arguments. Recognized aliases are "prod"/"production",
// "dev"/"development" and "test"/"testing"; matching is case-sensitive.
// The empty string selects development; any other name becomes a custom
// environment under that exact name.
func FromName(name string) Environment {
	if name == "" {
		return Development()
	}
	return fromName(name, os.Args)
}

func fromName(name string, args []string) Environment {
	switch name {
	case "prod", ProductionName:
		return New(ProductionName, args)
	case "dev", DevelopmentName:
		return New(DevelopmentName, args)
	case "test", TestingName:
		return New(TestingName, args)
	default:
		return New(name, args)
	}
}

// Name returns the environment's identifier.
func (e Environment) Name() string {
	return e.name
}

// Arguments returns a copy of the captured argument vector.
func (e Environment) Arguments() []string {
	return append([]string(nil), e.args...)
}

// Equal reports whether both environments carry the same name.
func (e Environment) Equal(other Environment) bool {
	return e.name == other.name
}

// IsRelease reports whether the binary was compiled with the "release"
// build tag. It is a property of the build, not of the environment's name:
// a production-named environment in a debug build still reports false.
func (e Environment) IsRelease() bool {
	return isRelease
}

// IsDevelopment reports whether this is the canonical development
// environment.
func (e Environment) IsDevelopment() bool {
	return e.name == DevelopmentName
}

func (e Environment) String() string {
	return e.name
}
