package version

import (
	"fmt"
	"runtime"
	"time"
)

// Заполняются линкером:
//
//	-ldflags "-X rival-server/internal/version.BuildDate=2026-02-10 ..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// Первый билд проекта. BuildID считается в днях от этой даты.
var buildEpoch = time.Date(
	2026, time.February, 10,
	0, 0, 0, 0,
	time.UTC,
)

// BuildInfo - то, что отдает роут /version
type BuildInfo struct {
	BuildID   int    `json:"buildId,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Branch    string `json:"branch,omitempty"`
	GoVersion string `json:"goVersion"`
	Error     string `json:"error,omitempty"`
}

// CalculateBuildID считает номер билда как число дней от эпохи проекта
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	// Часы вместо суток: эпоха и дата билда обе в UTC, DST не мешает
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает метаданные билда. Безопасна в любой момент:
// не проставленная линкером дата дает Error, а не панику.
func Info() BuildInfo {
	info := BuildInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		GoVersion: runtime.Version(),
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	return info
}

// String - однострочник для стартового лога
func String() string {
	info := Info()
	if info.Error != "" {
		return fmt.Sprintf("Build unknown (%s) %s", info.Error, info.GoVersion)
	}

	commit := info.Commit
	if commit == "" {
		commit = "dev"
	}
	return fmt.Sprintf("Build %d (%s) commit[%s] %s", info.BuildID, info.BuildDate, commit, info.GoVersion)
}
