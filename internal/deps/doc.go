// Package deps locates the external binaries the tool drives and installs
// static builds into the cache directory when they are missing.
package deps
