// Package types defines the back-office entities, their filter and patch
// types, line-item totals, the Repository interface, and the standard errors
// shared by the stores, the storage backend and the front ends.
package types
