// Package paraglide provides tooling for making Danish legislation
// searchable. It scrapes statute pages from retsinformation.dk, parses
// their HTML into a structured chapter/paragraph tree, embeds the
// resulting passages via the Cohere API, builds a local vector index,
// and serves semantic search over the parental leave act (barselsloven)
// through a CLI and a small web UI.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/,
// goquery/, cohere/, hnsw/, sqlite/).
package paraglide
