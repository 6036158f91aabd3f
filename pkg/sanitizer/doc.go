// Package sanitizer normalizes free-text listing input before validation
// and storage.
//
// All functions are idempotent - applying them multiple times produces the
// same result. Invalid input is handled gracefully, typically by returning
// an empty string rather than an error.
//
// Normalization includes:
//   - Free text (brand, model, description): collapse whitespace, strip
//     control and zero-width characters, trim
//   - Locations: the above plus lowercasing, so "New York" and "new york"
//     match the same search filter key
package sanitizer
