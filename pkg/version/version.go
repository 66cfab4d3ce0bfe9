package version

import (
	"runtime"
)

// Values are injected by the build via -ldflags.
var (
	GitVersion = "v0.0.0-dev"
	GitCommit  = ""
	BuildDate  = ""
)

// BuildVersionInfo is the version of the fsglob binary in hand.
type BuildVersionInfo struct {
	GitVersion string `json:"GitVersion" example:"v0.1.0"`
	GitCommit  string `json:"GitCommit" example:"d612b63108f2b5ce1ab2b9e02444eb1dac1d922d"`
	BuildDate  string `json:"BuildDate" example:"2023-11-16T14:03:31Z"`
	GOOS       string `json:"GOOS" example:"linux"`
	GOARCH     string `json:"GOARCH" example:"amd64"`
}

// Get returns the build version information compiled into the binary.
func Get() *BuildVersionInfo {
	return &BuildVersionInfo{
		GitVersion: GitVersion,
		GitCommit:  GitCommit,
		BuildDate:  BuildDate,
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}
}
