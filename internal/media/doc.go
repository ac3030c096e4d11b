// Package media models the metadata document returned by the retrieval tool
// and normalizes it into the typed candidate lists the selectors consume.
package media
