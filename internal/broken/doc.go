// Package broken implements the broken-content report: it runs the Looker
// content validator, enriches each finding with folder context and usage
// statistics, and emits a flat CSV identifying the content worth fixing or
// retiring.
package broken
