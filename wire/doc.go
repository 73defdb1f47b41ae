// Package wire implements the MoQT binary object model: Location, the
// KeyValuePair TLV element, ExtensionHeader (the LOC extension variants
// built on it), the FetchHeader/SubgroupHeader data-stream envelopes, and
// the Object record carried by both. Everything here is a value type with
// an exact, round-trippable byte layout; none of it depends on a live
// transport.
package wire
