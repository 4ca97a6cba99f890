// Package sanitizer provides input normalization for display fields.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result, and invalid input degrades to an empty string
// rather than an error. Fields are normalized before validation and storage
// so equality checks against stored data stay consistent.
package sanitizer
