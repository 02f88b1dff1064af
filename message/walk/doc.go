// Package walk provides depth-first processing of a parsed message tree. The
// processor is handed each part along with the chain of parts above it.
package walk
