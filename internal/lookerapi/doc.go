// Package lookerapi provides a thin client for the Looker REST API covering
// the calls the audit reports need: catalog listings, the user directory, the
// folder hierarchy, content validation, system activity queries, and soft
// deletion. It performs no retries, backoff, or pagination; collection
// endpoints are fetched in one request per run.
package lookerapi
