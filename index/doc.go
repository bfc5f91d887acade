// Package index provides inverted property indexes over embedding sets.
//
// A PropertyIndex maps property key/value pairs to member positions using
// roaring bitmaps, so repeated property-equality filters avoid re-scanning
// the whole set. Because sets are immutable, an index never goes stale.
package index
