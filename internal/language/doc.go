// Package language provides language tag normalization for stream metadata.
//
// Audio tracks, subtitle maps, and video titles all carry language signals in
// different shapes (BCP 47 tags like "es-419", bare codes like "es", or plain
// words like "castellano" inside a title). This package consolidates the
// conversions so the selectors share one vocabulary.
package language
