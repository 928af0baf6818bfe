// Package enrich implements the in-memory join pipeline behind the audit
// reports. It builds keyed indexes over the collections fetched from a Looker
// instance, resolves folder, owner, and usage references for each content
// item, and assembles one flat denormalized record per item.
//
// Every join is best-effort: production catalogs reference deleted users,
// folders from older API versions, and content with no recorded usage, so a
// failed lookup resolves to an explicit unknown marker in the output rather
// than an error.
package enrich
