package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"footballadmin/internal/clients/newsapi"
	"footballadmin/internal/clients/sportsdata"
	"footballadmin/internal/observability"
	"footballadmin/internal/store"
)

// SportsClient is the football data API surface used by the fetchers
type SportsClient interface {
	GetCompetition(ctx context.Context, code string) (map[string]interface{}, error)
	GetMatches(ctx context.Context, code string) ([]map[string]interface{}, error)
	GetStandings(ctx context.Context, code string) ([]map[string]interface{}, error)
	GetScorers(ctx context.Context, code string) ([]map[string]interface{}, error)
	GetTeams(ctx context.Context, code string) ([]map[string]interface{}, error)
}

// NewsClient is the news API surface used by the news fetcher
type NewsClient interface {
	FetchPage(ctx context.Context, page string) ([]map[string]interface{}, string, error)
}

// IngestStore defines the database operations required by IngestProcessor
type IngestStore interface {
	ReplaceSnapshots(ctx context.Context, kind store.SnapshotKind, rows []store.SnapshotRow) (int64, error)
	ListSnapshots(ctx context.Context, kind store.SnapshotKind) ([]store.Snapshot, error)
	BulkInsertTeams(ctx context.Context, params []store.CreateTeamParams) (int64, error)
}

// ErrNoRecords means every upstream call came back empty. The existing
// snapshot is left untouched in that case.
var ErrNoRecords = errors.New("no records fetched")

type IngestProcessor struct {
	store      IngestStore
	sports     SportsClient
	news       NewsClient
	codes      []string
	batchDelay time.Duration
	maxPages   int
	logger     *observability.Logger
}

func New(store IngestStore, sports SportsClient, news NewsClient, codes []string, batchDelay time.Duration, maxPages int, logger *observability.Logger) IngestProcessor {
	return IngestProcessor{
		store:      store,
		sports:     sports,
		news:       news,
		codes:      codes,
		batchDelay: batchDelay,
		maxPages:   maxPages,
		logger:     logger,
	}
}

// FetchResult is the per-endpoint outcome of a fetch-all run
type FetchResult struct {
	Endpoint      string `json:"endpoint"`
	Status        string `json:"status"`
	InsertedCount *int64  `json:"insertedCount,omitempty"`
	Error         *string `json:"error,omitempty"`
}

// FetchCompetitions replaces the competitions snapshot, one record per code
func (p *IngestProcessor) FetchCompetitions(ctx context.Context) (int64, error) {
	return p.fetchPerCode(ctx, store.SnapshotCompetitions, func(ctx context.Context, code string) ([]map[string]interface{}, error) {
		competition, err := p.sports.GetCompetition(ctx, code)
		if err != nil {
			return nil, err
		}
		return []map[string]interface{}{competition}, nil
	})
}

// FetchMatches replaces the fixture snapshot across all configured codes
func (p *IngestProcessor) FetchMatches(ctx context.Context) (int64, error) {
	return p.fetchPerCode(ctx, store.SnapshotMatches, p.sports.GetMatches)
}

// FetchStandings replaces the standings snapshot across all configured codes
func (p *IngestProcessor) FetchStandings(ctx context.Context) (int64, error) {
	return p.fetchPerCode(ctx, store.SnapshotStandings, p.sports.GetStandings)
}

// FetchScorers replaces the top scorers snapshot across all configured codes
func (p *IngestProcessor) FetchScorers(ctx context.Context) (int64, error) {
	return p.fetchPerCode(ctx, store.SnapshotScorers, p.sports.GetScorers)
}

// FetchTeams pulls teams for every configured code into the admin teams
// table. Unlike the snapshot kinds this is additive: names are deduplicated
// in memory, existing teams are skipped on conflict and nothing is deleted.
func (p *IngestProcessor) FetchTeams(ctx context.Context) (int64, error) {
	seen := map[string]struct{}{}
	params := []store.CreateTeamParams{}

	for i, code := range p.codes {
		ctx := observability.WithFields(ctx, observability.Field{Key: "competition_code", Value: code})

		records, err := p.sports.GetTeams(ctx, code)
		if err != nil {
			var apiErr *sportsdata.APIError
			if errors.As(err, &apiErr) {
				p.logger.Warn(ctx, fmt.Sprintf("skipping code after api error: %v", apiErr))
				continue
			}
			return 0, err
		}

		for _, record := range records {
			name, _ := record["name"].(string)
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			var crestURL *string
			if crest, ok := record["crest"].(string); ok && crest != "" {
				crestURL = &crest
			}
			params = append(params, store.CreateTeamParams{Name: name, CrestURL: crestURL})
		}

		if err := p.pause(ctx, i); err != nil {
			return 0, err
		}
	}

	if len(params) == 0 {
		return 0, ErrNoRecords
	}

	inserted, err := p.store.BulkInsertTeams(ctx, params)
	if err != nil {
		return 0, err
	}
	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "collected", Value: fmt.Sprintf("%d", len(params))},
		observability.Field{Key: "inserted", Value: fmt.Sprintf("%d", inserted)}),
		"team ingestion finished")
	return inserted, nil
}

// FetchNews replaces the news snapshot, walking the paged cursor up to the
// configured page cap. News rows carry no competition code.
func (p *IngestProcessor) FetchNews(ctx context.Context) (int64, error) {
	fetchedAt := time.Now()
	rows := []store.SnapshotRow{}

	page := ""
	for i := 0; i < p.maxPages; i++ {
		results, nextPage, err := p.news.FetchPage(ctx, page)
		if err != nil {
			return 0, err
		}
		for _, article := range results {
			rows = append(rows, store.SnapshotRow{
				Payload:   store.JSONB(article),
				FetchedAt: fetchedAt,
			})
		}
		if nextPage == "" {
			break
		}
		page = nextPage
	}

	if len(rows) == 0 {
		return 0, ErrNoRecords
	}
	return p.store.ReplaceSnapshots(ctx, store.SnapshotNews, rows)
}

// FetchAll drives every fetcher in sequence and reports per-endpoint
// outcomes. One endpoint failing does not stop the rest; the summary is the
// only place those failures surface.
func (p *IngestProcessor) FetchAll(ctx context.Context) []FetchResult {
	fetchers := []struct {
		endpoint string
		run      func(context.Context) (int64, error)
	}{
		{"competitions", p.FetchCompetitions},
		{"matches", p.FetchMatches},
		{"standings", p.FetchStandings},
		{"scorers", p.FetchScorers},
		{"teams", p.FetchTeams},
		{"news", p.FetchNews},
	}

	results := make([]FetchResult, 0, len(fetchers))
	for _, f := range fetchers {
		ctx := observability.WithFields(ctx, observability.Field{Key: "fetch_endpoint", Value: f.endpoint})

		inserted, err := f.run(ctx)
		if err != nil && !errors.Is(err, ErrNoRecords) {
			p.logger.InfoWithError(ctx, "fetch endpoint failed", err)
			msg := err.Error()
			results = append(results, FetchResult{Endpoint: f.endpoint, Status: "rejected", Error: &msg})
			continue
		}

		count := inserted
		results = append(results, FetchResult{Endpoint: f.endpoint, Status: "fulfilled", InsertedCount: &count})
	}
	return results
}

// ListSnapshots returns the current rows of one snapshot kind
func (p *IngestProcessor) ListSnapshots(ctx context.Context, kind store.SnapshotKind) ([]store.Snapshot, error) {
	return p.store.ListSnapshots(ctx, kind)
}

// fetchPerCode collects records for every configured competition code and
// replaces the snapshot for the kind. A non-2xx API response skips that code
// with a warning; a transport or decode error aborts the whole fetch. No
// records collected at all leaves the previous snapshot in place.
func (p *IngestProcessor) fetchPerCode(ctx context.Context, kind store.SnapshotKind, fetch func(context.Context, string) ([]map[string]interface{}, error)) (int64, error) {
	fetchedAt := time.Now()
	rows := []store.SnapshotRow{}

	for i, code := range p.codes {
		code := code
		ctx := observability.WithFields(ctx,
			observability.Field{Key: "snapshot_kind", Value: string(kind)},
			observability.Field{Key: "competition_code", Value: code})

		records, err := fetch(ctx, code)
		if err != nil {
			var apiErr *sportsdata.APIError
			if errors.As(err, &apiErr) {
				p.logger.Warn(ctx, fmt.Sprintf("skipping code after api error: %v", apiErr))
				continue
			}
			return 0, err
		}

		for _, record := range records {
			rows = append(rows, store.SnapshotRow{
				CompetitionCode: &code,
				Payload:         store.JSONB(record),
				FetchedAt:       fetchedAt,
			})
		}

		if err := p.pause(ctx, i); err != nil {
			return 0, err
		}
	}

	if len(rows) == 0 {
		return 0, ErrNoRecords
	}

	inserted, err := p.store.ReplaceSnapshots(ctx, kind, rows)
	if err != nil {
		return 0, err
	}
	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "snapshot_kind", Value: string(kind)},
		observability.Field{Key: "inserted", Value: fmt.Sprintf("%d", inserted)}),
		"snapshot replaced")
	return inserted, nil
}

// pause sleeps the configured delay after every second code, except after
// the last one, to stay inside the upstream rate limit.
func (p *IngestProcessor) pause(ctx context.Context, index int) error {
	done := index + 1
	if done%2 != 0 || done >= len(p.codes) || p.batchDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(p.batchDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ NewsClient = (*newsapi.Client)(nil)
var _ SportsClient = (*sportsdata.Client)(nil)
