package models

// Download states for one report file in the simulated Rezerv export flow.
const (
	DownloadAvailable   = "available"
	DownloadDownloading = "downloading"
	DownloadDownloaded  = "downloaded"
)

// FileStatus pairs a report filename with its current download state.
type FileStatus struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// DownloadProgress is the state of the sequential download run.
type DownloadProgress struct {
	RunID      string       `json:"run_id,omitempty"`
	Running    bool         `json:"running"`
	Files      []FileStatus `json:"files"`
	Downloaded int          `json:"downloaded"`
	Total      int          `json:"total"`
	Percent    int          `json:"percent"`
}
