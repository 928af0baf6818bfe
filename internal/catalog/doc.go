// Package catalog defines the typed entities fetched from a Looker instance:
// content items (dashboards and looks), folders, users, usage statistics, and
// content validator findings. The types mirror the fields the audit reports
// consume; optional fields are modeled as pointers so an absent value is
// distinguishable from an empty one.
package catalog
