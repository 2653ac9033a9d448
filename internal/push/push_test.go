package push

import "testing"

func TestResolveTopic(t *testing.T) {
	tests := []struct {
		name           string
		targetAudience string
		customTopic    string
		want           string
	}{
		{"all users", "all-users", "", "all-users"},
		{"live matches", "live-matches", "", "live-matches"},
		{"custom", "custom", "goal-alerts", "goal-alerts"},
		{"unknown audience falls back to all users", "vip-users", "", "all-users"},
		{"empty audience falls back to all users", "", "", "all-users"},
		{"custom topic ignored for non-custom audience", "all-users", "goal-alerts", "all-users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTopic(tt.targetAudience, tt.customTopic)
			if got != tt.want {
				t.Errorf("ResolveTopic(%q, %q) = %q, want %q", tt.targetAudience, tt.customTopic, got, tt.want)
			}
		})
	}
}
