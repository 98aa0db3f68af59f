// Package service exposes the list, item and auth operations with the
// contract the app screens are written against: failures are logged and
// reported as zero ids, false, empty slices or nil, never as errors.
//
// Callers that need to tell "not found" apart from a storage failure use
// package store directly.
package service
