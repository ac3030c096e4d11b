// Package ytdlp wraps the yt-dlp command line tool for metadata fetching
// and download execution.
package ytdlp
