package discogs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"discosync/internal"
	"discosync/internal/config"
	"discosync/internal/pipeline"
)

// progressEvery is the item cadence of progress log lines.
const progressEvery = 25

type SyncService struct {
	client  *Client
	cfg     config.Config
	limiter *RateLimiter
	log     zerolog.Logger
}

func NewSyncService(cfg config.Config, log zerolog.Logger) *SyncService {
	return &SyncService{
		client:  NewClient(cfg),
		cfg:     cfg,
		limiter: NewRateLimiter(time.Duration(cfg.SleepBetweenCallsMs) * time.Millisecond),
		log:     log,
	}
}

// FetchRows walks the whole collection in listing order and returns one
// normalized row per item with a resolvable release id; items without one
// are skipped silently. A failed full-release fetch degrades that item to
// basic-information data. Any listing-level error is fatal.
func (s *SyncService) FetchRows(ctx context.Context) ([]internal.Row, error) {
	page, err := s.client.GetCollectionPage(ctx, 1)
	if err != nil {
		return nil, err
	}
	total := page.Pagination.Items
	s.log.Info().
		Str("user", s.cfg.DiscogsUsername).
		Int("items", total).
		Bool("full_release", s.cfg.IncludeFullRelease).
		Msg("collection sync started")

	rows := make([]internal.Row, 0, total)
	processed := 0
	for {
		for _, item := range page.Items {
			processed++
			s.limiter.WaitTurn()

			releaseID := item.ReleaseID
			if releaseID == 0 {
				releaseID = item.Basic.ID
			}
			if releaseID == 0 {
				continue
			}

			var full *internal.ReleaseRecord
			if s.cfg.IncludeFullRelease {
				full = s.fetchFullRelease(ctx, releaseID)
			}

			rows = append(rows, pipeline.BuildRow(item, full))

			if processed%progressEvery == 0 {
				s.log.Info().Int("processed", processed).Int("total", total).Int("rows", len(rows)).Msg("progress")
			}
		}

		if page.Pagination.Page >= page.Pagination.Pages {
			break
		}
		page, err = s.client.GetCollectionPage(ctx, page.Pagination.Page+1)
		if err != nil {
			return nil, err
		}
	}

	s.log.Info().Int("rows", len(rows)).Msg("collection sync finished")
	return rows, nil
}

// fetchFullRelease is the single containment point of the pipeline: any
// failure of the per-release call, HTTP status or connection level,
// downgrades the item to basic data by returning a nil record, which makes
// every field fall back. Listing errors never pass through here and stay
// fatal.
func (s *SyncService) fetchFullRelease(ctx context.Context, releaseID int) *internal.ReleaseRecord {
	record, err := s.client.GetRelease(ctx, releaseID)
	if err != nil {
		s.log.Debug().
			Int("release_id", releaseID).
			Err(err).
			Msg("full release fetch failed, keeping basic information")
		return nil
	}
	return record
}
