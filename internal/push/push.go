package push

import (
	"context"

	"footballadmin/internal/store"
)

// Provider broadcast topics. Devices subscribe to these; a campaign's target
// audience resolves to exactly one of them (or to an operator-supplied
// custom topic).
const (
	TopicAllUsers    = "all-users"
	TopicLiveMatches = "live-matches"
)

// Sender is the single capability the push-messaging provider exposes.
// Processors depend on this interface so tests can run against fakes.
type Sender interface {
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error)
}

// ResolveTopic maps a campaign's target audience to a provider topic. It is a
// pure function of its inputs: live-matches targets the fixed live topic,
// custom targets the supplied topic, and everything else falls back to the
// all-users broadcast.
func ResolveTopic(targetAudience, customTopic string) string {
	switch targetAudience {
	case store.TargetAudienceLiveMatches:
		return TopicLiveMatches
	case store.TargetAudienceCustom:
		return customTopic
	default:
		return TopicAllUsers
	}
}
