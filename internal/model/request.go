package model

// Mode selects what the external downloader extracts for a request.
type Mode string

const (
	ModeVideo Mode = "video"
	ModeAudio Mode = "audio"
)

// ClipWindow restricts a download to a (start, end) time range.
// Both bounds are always present together; pairing is validated at the CLI
// layer before any request is built.
type ClipWindow struct {
	Start string // e.g. "00:01:30"
	End   string // e.g. "00:02:00"
}

// SectionRange renders the window as the downloader's section-extraction
// range tag, e.g. "*00:01:30-00:02:00".
func (c ClipWindow) SectionRange() string {
	return "*" + c.Start + "-" + c.End
}

// DownloadRequest is one unit of work: a URL plus its mode and optional clip.
// Immutable once created. Duplicate URLs are independent requests; identity
// is the request's position in the batch, never the URL string.
type DownloadRequest struct {
	URL  string
	Mode Mode
	Clip *ClipWindow
}

// CommandSpec is the fully-resolved downloader invocation for one request.
// Pure data; the URL is always the final argument.
type CommandSpec struct {
	Args           []string
	OutputTemplate string // "<outdir>/%(title)s.%(ext)s"
}

// TaskOutcome is the terminal result of executing one CommandSpec.
// Exactly one outcome exists per request, whatever the failure cause.
type TaskOutcome struct {
	URL        string
	OK         bool
	Error      string // captured diagnostic text when !OK
	OutputPath string // final media path when the downloader reported one
	Bytes      int64  // size of OutputPath; 0 when unknown
}

// TaskFailure pairs a failed URL with its diagnostic text.
type TaskFailure struct {
	URL    string
	Reason string
}

// RunReport aggregates every TaskOutcome of a batch.
type RunReport struct {
	Total     int
	Succeeded []string
	Failed    []TaskFailure
}

// Options holds user-configurable runtime options as parsed from flags.
type Options struct {
	OutDir   string // dated output directory, already resolved for the run's mode
	Audio    bool
	Clip     *ClipWindow
	Parallel int
	Upload   bool
	Remote   string // rclone remote name
	DLBinary string // optional explicit path to yt-dlp/youtube-dl
	Verbose  bool
	NoUI     bool
}

// Mode returns the download mode implied by the options.
func (o Options) Mode() Mode {
	if o.Audio {
		return ModeAudio
	}
	return ModeVideo
}
