// Package library persists the decoded patch index in SQLite and walks
// patch directories to keep it current.
//
// The store records one row per patch file, including files whose decode
// failed, so the index always reflects what is on disk. Content
// fingerprints identify byte-identical patches across raw and archived
// containers. The scanner holds a file lock for the duration of a walk so
// concurrent invocations cannot interleave index writes.
package library
