package constants

import "time"

var ScraperConfig = struct {
	DefaultBaseURL   string
	DefaultUserAgent string
	RequestTimeout   time.Duration
	ProfilePath      string
	RankingsPath     string
	ProfileDataID    string
	LeaderboardUser  string
}{
	DefaultBaseURL:   "https://osu.ppy.sh",
	DefaultUserAgent: "Mozilla/5.0 (compatible; OsuScraper/1.0)",
	RequestTimeout:   30 * time.Second,
	ProfilePath:      "/u/%s",
	RankingsPath:     "/rankings/osu/performance?page=%d#scores",
	ProfileDataID:    "#json-user",                                      // 프로필 페이지에 내장된 JSON
	LeaderboardUser:  ".ranking-page-table__user-link-text.js-usercard", // 랭킹 테이블 유저 링크
}

var PoolConfig = struct {
	DefaultWorkers int
	MaxWorkers     int
}{
	DefaultWorkers: 2,
	MaxWorkers:     32, // 그 이상은 429 응답이 거의 확실
}

var OutputConfig = struct {
	DefaultFileName string
	TextExtension   string
	JSONExtension   string
	JSONIndent      string
	FileMode        uint32
}{
	DefaultFileName: "default",
	TextExtension:   ".txt",
	JSONExtension:   ".json",
	JSONIndent:      "  ",
	FileMode:        0o644,
}
