//go:build !release

package environment

// isRelease is fixed at compile time by the "release" build tag.
const isRelease = false
