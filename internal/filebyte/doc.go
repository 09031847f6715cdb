// Package filebyte implements the traversal and analysis engine behind the
// filebyte CLI.
//
// It walks directory trees using fastwalk for parallel traversal, probes
// each entry into a normalized metadata record, and offers filtering,
// sorting, duplicate detection, tree rendering and structured export on
// top of the materialized collection.
package filebyte
