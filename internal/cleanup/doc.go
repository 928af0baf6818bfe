// Package cleanup implements soft deletion of dashboards and looks flagged by
// the audit reports. Deletion is recoverable server-side; the command still
// supports dry runs and interactive confirmation before touching content.
package cleanup
