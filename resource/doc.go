// Package resource governs the resources spent on building and querying
// indexes: a memory budget for node storage, a cap on concurrently running
// queries, and a query rate limit.
//
// A nil *Controller is valid and imposes no limits.
package resource
