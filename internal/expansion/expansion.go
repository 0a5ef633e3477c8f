// Package expansion expands ${...} references in configuration values
// through the registered secret resolvers. It walks structs, pointers,
// slices, and maps, rewriting string fields in place.
package expansion

import (
	"os"
	"reflect"
	"strings"

	"github.com/animalet/gregal-go/pkg/secrets"
	"github.com/pkg/errors"
)

// ExpandVariables recursively traverses toExpand and expands ${...}
// references in string fields. References use the "prefix:key" form
// understood by the secrets package; a bare key means an environment
// variable. toExpand must be a pointer for the rewrite to stick.
func ExpandVariables(toExpand any) error {
	if toExpand == nil {
		return nil
	}

	v := reflect.ValueOf(toExpand)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		return expandValue(v.Elem())
	}
	return expandValue(v)
}

func expandValue(val reflect.Value) error {
	switch val.Kind() {
	case reflect.String:
		if val.CanSet() {
			var expandErr error
			expanded := os.Expand(strings.TrimSpace(val.String()), func(property string) string {
				if expandErr != nil {
					return ""
				}
				resolved, err := secrets.Resolve(property)
				if err != nil {
					expandErr = errors.Wrap(err, "error resolving property")
					return ""
				}
				return resolved
			})
			if expandErr != nil {
				return expandErr
			}
			val.SetString(expanded)
		}

	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			if err := expandValue(val.Field(i)); err != nil {
				return err
			}
		}

	case reflect.Ptr:
		if !val.IsNil() {
			if err := expandValue(val.Elem()); err != nil {
				return err
			}
		}

	case reflect.Slice:
		for j := 0; j < val.Len(); j++ {
			if err := expandValue(val.Index(j)); err != nil {
				return err
			}
		}

	case reflect.Map:
		for _, key := range val.MapKeys() {
			mapVal := val.MapIndex(key)
			// Map values are not addressable, so expand a copy and set it back
			newVal := reflect.New(mapVal.Type()).Elem()
			newVal.Set(mapVal)
			if err := expandValue(newVal); err != nil {
				return err
			}
			val.SetMapIndex(key, newVal)
		}
	default:
		// No action needed for other kinds
	}

	return nil
}
