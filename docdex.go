// Package docdex provides tooling for documentation search indexes: the
// static payload a documentation generator emits once per build and a
// client-side search widget consumes read-only. It decodes and encodes the
// index payload, validates its structural invariants, answers ranked
// free-text lookups and object-name resolution, and can generate a
// compatible index from documentation pages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package docdex
