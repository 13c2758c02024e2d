// Package normalisers groups the per-format handlers that turn a parsed
// bulletin document into announcement records, one package per schema
// family: rcsa, pcl, div, rcsb and bilan.
//
// Handlers share the builder package for entities, addresses and
// registrations, the schema package for common XML fragments and the
// value package for dates, capital and officers. Every handler implements
// driven.Normaliser and is registered with the dispatcher at startup.
package normalisers
