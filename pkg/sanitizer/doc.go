// Package sanitizer normalizes user-supplied profile and listing fields
// before validation and storage. Normalization is lossy on purpose: it trims,
// collapses whitespace and canonicalizes phone numbers, it does not validate.
package sanitizer
