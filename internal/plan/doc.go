// Package plan freezes a finished selection into the argument list handed
// to the retrieval tool for download and muxing.
package plan
