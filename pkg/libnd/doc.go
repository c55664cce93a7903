// Package libnd provides the newsdesk API client used by the
// workflow activities (spike, unspike, fetch-to-archive, upload).
package libnd
