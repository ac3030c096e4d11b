// Package textutil provides filename sanitization for download targets.
package textutil
