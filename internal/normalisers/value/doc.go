// Package value turns raw source strings into typed values: dates,
// monetary capital, officer listings, property types and origins. It also
// prunes absent values from nested structures before serialisation.
//
// Parsers never fail a record. A value that matches no pattern is either
// reported as an error for the caller to log and omit, or kept raw, and
// every fallback tier is logged so upstream drift stays visible.
package value
