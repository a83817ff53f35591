package util

// 빌드 시 -ldflags 로 주입된다
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
}

func GetVersion() VersionInfo {
	return VersionInfo{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
	}
}
