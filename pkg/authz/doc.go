// Package authz holds the pure resource-authorization predicates:
// "can this user act on this item?" and "can this user see this guide?".
// Both consult narrow read-only lookups and deny on any ambiguous,
// missing, or malformed input.
package authz
