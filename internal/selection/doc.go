// Package selection implements the stream selection engine.
//
// Given a normalized catalog it picks the best video track, a
// preferred-language (or interactively chosen) audio track, and an optional
// subtitle language. Each automatic choice carries a provenance note
// explaining how it was made, shown to the user before the download starts.
package selection
