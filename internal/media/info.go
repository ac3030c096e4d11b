package media

// codecNone is the sentinel the retrieval tool uses for "this track carries
// no video/audio". An absent codec field is not the sentinel: some entries
// omit the field entirely and still carry the medium.
const codecNone = "none"

// Format is one stream descriptor row from the metadata dump.
type Format struct {
	ID         string  `json:"format_id"`
	Ext        string  `json:"ext"`
	VCodec     string  `json:"vcodec"`
	ACodec     string  `json:"acodec"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	TBR        float64 `json:"tbr"` // total bitrate in kbit/s
	Language   string  `json:"language"`
	FormatNote string  `json:"format_note"`
	Filesize   int64   `json:"filesize"`
}

// HasVideo reports whether the format carries a video track.
func (f Format) HasVideo() bool { return f.VCodec != codecNone }

// HasAudio reports whether the format carries an audio track.
func (f Format) HasAudio() bool { return f.ACodec != codecNone }

// VideoOnly reports a video track with the audio sentinel set.
func (f Format) VideoOnly() bool { return f.HasVideo() && f.ACodec == codecNone }

// AudioOnly reports an audio track with the video sentinel set.
func (f Format) AudioOnly() bool { return f.HasAudio() && f.VCodec == codecNone }

// SubtitleTrack is one subtitle rendition under a language tag in the
// "subtitles" or "automatic_captions" mapping.
type SubtitleTrack struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Info is the metadata document for a single video.
type Info struct {
	ID                string                     `json:"id"`
	Title             string                     `json:"title"`
	DurationString    string                     `json:"duration_string"`
	Formats           []Format                   `json:"formats"`
	Subtitles         map[string][]SubtitleTrack `json:"subtitles"`
	AutomaticCaptions map[string][]SubtitleTrack `json:"automatic_captions"`
}
