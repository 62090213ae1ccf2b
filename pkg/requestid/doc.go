// Package requestid assigns each request a stable identifier for log
// correlation, honoring valid client-provided X-Request-ID headers.
package requestid
