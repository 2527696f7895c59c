// Package webread fetches human-readable content from a single URL by
// escalating through progressively more capable retrieval tiers: a static
// HTTP fetch, a remote rendering proxy, and a local headless browser.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, rod/, goquery/).
package webread
