// Package xmldoc provides the two views the format handlers read a
// bulletin through:
//
//   - a typed, hierarchical decode into encoding/xml structs, which is
//     convenient but loses the relative order of sibling elements
//   - an ordered element tree that keeps every element in document order,
//     required where meaning is carried by sibling position
//
// Both views are built from the same UTF-8 text. Payloads delivered as raw
// bytes are re-encoded from their declared charset first, and the XML
// declaration is never used to re-decode text that is already UTF-8.
package xmldoc
