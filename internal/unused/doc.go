// Package unused implements the unused-content report: it queries the
// system activity model for content idle beyond a configurable number of
// days, enriches each row with ownership and folder context, and emits a
// flat CSV suitable for cleanup triage.
package unused
