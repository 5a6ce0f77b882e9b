// Package ci checks the repository's CI workflow for internal consistency:
// the build matrix, its guard condition and the feature-tag axis are data
// the Go toolchain never validates, so a test does.
package ci
