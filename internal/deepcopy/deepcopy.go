// Package deepcopy produces deep copies of configuration snapshots so that
// callers can never mutate state shared with the rest of the process.
package deepcopy

import (
	"github.com/pkg/errors"
	"github.com/tiendc/go-deepcopy"
)

// Copy returns a deep copy of src. Slices, maps, and nested pointers are
// copied recursively. A nil src yields (nil, nil).
func Copy[T any](src *T) (*T, error) {
	if src == nil {
		return nil, nil
	}

	dst := new(T)
	if err := deepcopy.Copy(dst, src); err != nil {
		return nil, errors.Wrapf(err, "failed to deep copy type %T", src)
	}
	return dst, nil
}
