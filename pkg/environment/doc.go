// Package environment distinguishes development, staging and production
// runtime environments and carries the active one through context.
package environment
