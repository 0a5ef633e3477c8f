package environment

import (
	"fmt"
	"strings"
)

// EnvKey is the process variable consulted when the argument vector does
// not carry an --env flag.
const EnvKey = "GREGAL_ENV"

const (
	longFlag  = "--env"
	shortFlag = "-e"
)

// ParseError reports malformed option syntax in the argument vector given
// to Detect, such as an --env flag with no value following it.
type ParseError struct {
	Flag string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("option %s expects a value", e.Flag)
}

// Detect resolves the environment from a command-line argument vector.
//
// The environment name is taken from the "--env <name>" option (short form
// "-e", "=value" syntax accepted), falling back to the GREGAL_ENV process
// variable, falling back to development. Recognized names map to their
// canonical environments as in FromName; unrecognized names become custom
// environments rather than errors, so applications can define their own
// modes without registering them anywhere.
//
// The tokens consumed by the option are removed from the argument vector
// attached to the returned environment. The only failure mode is a
// *ParseError for an --env flag with a missing value; that error is meant
// to propagate to the caller, which aborts startup with a user-visible
// message.
func Detect(args []string) (Environment, error) {
	name, found, rest, err := splitEnvFlag(args)
	if err != nil {
		return Environment{}, err
	}

	if !found {
		name, found = Get(EnvKey)
	}

	if !found {
		return New(DevelopmentName, rest), nil
	}
	return fromName(name, rest), nil
}

// splitEnvFlag extracts the first --env/-e option from args, returning its
// value and the remaining tokens. Tokens other than the consumed option
// pass through untouched, so the caller's own flags survive detection.
func splitEnvFlag(args []string) (value string, found bool, rest []string, err error) {
	rest = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if found {
			rest = append(rest, arg)
			continue
		}

		switch {
		case arg == longFlag || arg == shortFlag:
			if i+1 >= len(args) {
				return "", false, nil, &ParseError{Flag: arg}
			}
			i++
			value = args[i]
			found = true
		case strings.HasPrefix(arg, longFlag+"="):
			value = strings.TrimPrefix(arg, longFlag+"=")
			found = true
		case strings.HasPrefix(arg, shortFlag+"="):
			value = strings.TrimPrefix(arg, shortFlag+"=")
			found = true
		default:
			rest = append(rest, arg)
		}
	}
	return value, found, rest, nil
}
