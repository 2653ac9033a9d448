package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JSONB is a custom type for JSONB fields
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for JSONB
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for JSONB")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*j = make(JSONB)
		return nil
	}

	result := make(JSONB)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// UUIDArray is a custom type for PostgreSQL uuid[] columns
type UUIDArray []uuid.UUID

// Value implements the driver.Valuer interface for UUIDArray
func (a UUIDArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	if len(a) == 0 {
		return "{}", nil
	}
	parts := make([]string, len(a))
	for i, id := range a {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Scan implements the sql.Scanner interface for UUIDArray
func (a *UUIDArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var str string
	switch v := value.(type) {
	case []byte:
		str = string(v)
	case string:
		str = v
	default:
		return errors.New("incompatible type for UUIDArray")
	}

	str = strings.Trim(str, "{}")
	if str == "" {
		*a = UUIDArray{}
		return nil
	}

	parts := strings.Split(str, ",")
	out := make(UUIDArray, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid uuid in array: %w", err)
		}
		out = append(out, id)
	}
	*a = out
	return nil
}

// Contains reports whether the array holds the given id
func (a UUIDArray) Contains(id uuid.UUID) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}

// Team is an admin-managed football team
type Team struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CrestURL  *string   `db:"crest_url" json:"crestUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ChannelHeader is a single HTTP header a player must send with the stream request
type ChannelHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ChannelHeaders is the JSONB-stored list of stream headers
type ChannelHeaders []ChannelHeader

func (h ChannelHeaders) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	return json.Marshal(h)
}

func (h *ChannelHeaders) Scan(value interface{}) error {
	if value == nil {
		*h = ChannelHeaders{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for ChannelHeaders")
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*h = ChannelHeaders{}
		return nil
	}
	return json.Unmarshal(bytes, h)
}

// Channel is a stream source with its playback headers
type Channel struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	M3U8URL   string         `db:"m3u8_url" json:"m3u8Url"`
	Headers   ChannelHeaders `db:"headers" json:"headers"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

// Match pairs two teams with one or more stream channels
type Match struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	Title                string    `db:"title" json:"title"`
	Team1ID              uuid.UUID `db:"team1_id" json:"team1Id"`
	Team2ID              uuid.UUID `db:"team2_id" json:"team2Id"`
	ChannelIDs           UUIDArray `db:"channel_ids" json:"channelIds"`
	StreamURL            *string   `db:"stream_url" json:"streamUrl"`
	IsLive               bool      `db:"is_live" json:"isLive"`
	NotificationsEnabled bool      `db:"notifications_enabled" json:"notificationsEnabled"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

// AdConfig is the singleton mobile-ads configuration
type AdConfig struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	AdsEnabled          bool      `db:"ads_enabled" json:"adsEnabled"`
	UseAdMob            bool      `db:"use_admob" json:"useAdMob"`
	UseStartApp         bool      `db:"use_startapp" json:"useStartApp"`
	AdMobAppID          *string   `db:"admob_app_id" json:"adMobAppId"`
	AdMobBannerID       *string   `db:"admob_banner_id" json:"adMobBannerId"`
	AdMobInterstitialID *string   `db:"admob_interstitial_id" json:"adMobInterstitialId"`
	StartAppAppID       *string   `db:"startapp_app_id" json:"startAppAppId"`
	AdFrequency         int       `db:"ad_frequency" json:"adFrequency"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// CampaignMessage is the notification content of a campaign
type CampaignMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (m CampaignMessage) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *CampaignMessage) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		*m = CampaignMessage{}
		return nil
	default:
		return errors.New("incompatible type for CampaignMessage")
	}
	return json.Unmarshal(bytes, m)
}

// CampaignStats holds delivery counters. These are placeholder counters
// written at dispatch time, not true delivery telemetry.
type CampaignStats struct {
	Sent      int `json:"sent"`
	Delivered int `json:"delivered"`
	Opened    int `json:"opened"`
}

func (s CampaignStats) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *CampaignStats) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		*s = CampaignStats{}
		return nil
	default:
		return errors.New("incompatible type for CampaignStats")
	}
	return json.Unmarshal(bytes, s)
}

// Campaign is a single push-notification send attempt with audit metadata
type Campaign struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Title          string          `db:"title" json:"title"`
	Message        CampaignMessage `db:"message" json:"message"`
	TargetAudience string          `db:"target_audience" json:"targetAudience"`
	CustomTopic    *string         `db:"custom_topic" json:"customTopic,omitempty"`
	CampaignType   string          `db:"campaign_type" json:"campaignType"`
	Status         string          `db:"status" json:"status"`
	MatchID        *uuid.UUID      `db:"match_id" json:"matchId,omitempty"`
	MessageID      *string         `db:"message_id" json:"messageId,omitempty"`
	Stats          CampaignStats   `db:"stats" json:"stats"`
	Error          *string         `db:"error" json:"error,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
	SentAt         *time.Time      `db:"sent_at" json:"sentAt,omitempty"`
	FailedAt       *time.Time      `db:"failed_at" json:"failedAt,omitempty"`
}

// Snapshot is one record of an externally fetched dataset. Payload carries the
// provider-shaped JSON as-is; only provenance fields are added around it.
type Snapshot struct {
	ID              uuid.UUID `db:"id" json:"id"`
	CompetitionCode *string   `db:"competition_code" json:"competitionCode,omitempty"`
	Payload         JSONB     `db:"payload" json:"payload"`
	FetchedAt       time.Time `db:"fetched_at" json:"fetchedAt"`
}
