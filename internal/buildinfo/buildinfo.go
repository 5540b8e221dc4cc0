package buildinfo

import "time"

// Set via -ldflags at build time
var (
	Version    = "dev"
	CommitHash string
	BuildTime  string
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC()

// Info is the build and uptime summary reported by the health endpoint
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit,omitempty"`
	BuildTime  string `json:"buildTime,omitempty"`
	Uptime     string `json:"uptime"`
}

// Current returns the build info with uptime measured from StartTime
func Current() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Uptime:     time.Since(StartTime).Round(time.Second).String(),
	}
}
