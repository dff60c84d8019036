// Package matching holds the ingredient matching and recommendation core.
//
// Everything here is pure: callers fetch recipe records (with rating
// aggregates) from the store once per request and pass them in. Nothing in
// this package performs I/O or keeps state between calls.
package matching
