// Package version 保存构建信息，发布时通过 ldflags 注入：
//
//	-X 'github.com/ByLCY/dictsheet/version.Version=0.6.1'
//	-X 'github.com/ByLCY/dictsheet/version.CommitHash=abc123'
//	-X 'github.com/ByLCY/dictsheet/version.BuildDate=2024-09-01T00:00:00Z'
package version

import "fmt"

var (
	Version    = "0.6.0"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Info 是结构化的构建信息。
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildDate  string `json:"build_date"`
}

func Get() Info {
	return Info{Version: Version, CommitHash: CommitHash, BuildDate: BuildDate}
}

func (i Info) String() string {
	if i.CommitHash == "unknown" && i.BuildDate == "unknown" {
		return i.Version
	}
	return fmt.Sprintf("%s (%s, %s)", i.Version, i.CommitHash, i.BuildDate)
}
