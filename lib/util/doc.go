// Package util provides small helpers shared by the store implementations and
// the command line tools.
//
// The package contains:
//   - functions: seeded FNV-1a hashing (used as the hasher of
//     the concurrent backing map in lib/store/mapstore)
//   - statistics: summary statistics over a series of measurements (used by the
//     race command)
package util
