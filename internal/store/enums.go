package store

// Campaign ENUMs
const (
	CampaignStatusDraft  = "draft"
	CampaignStatusActive = "active"
	CampaignStatusPaused = "paused"
	CampaignStatusSent   = "sent"
	CampaignStatusFailed = "failed"
)

const (
	CampaignTypeInstant   = "instant"
	CampaignTypeScheduled = "scheduled"
)

const (
	TargetAudienceAllUsers    = "all-users"
	TargetAudienceLiveMatches = "live-matches"
	TargetAudienceCustom      = "custom"
)

// SnapshotKind names a replaceable external dataset
type SnapshotKind string

const (
	SnapshotCompetitions SnapshotKind = "competitions"
	SnapshotMatches      SnapshotKind = "api_matches"
	SnapshotStandings    SnapshotKind = "standings"
	SnapshotScorers      SnapshotKind = "scorers"
	SnapshotNews         SnapshotKind = "news_articles"
)

// snapshotTables whitelists table names so a kind can never inject SQL
var snapshotTables = map[SnapshotKind]string{
	SnapshotCompetitions: "competitions",
	SnapshotMatches:      "api_matches",
	SnapshotStandings:    "standings",
	SnapshotScorers:      "scorers",
	SnapshotNews:         "news_articles",
}
