// Package report streams audit rows to a CSV destination with a uniform
// header, enforcing that every row in a run exposes the same column set.
package report
