package discogs

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
)

// collectionFixture serves a two-page collection: item A with a working full
// release, item B whose detail fetch fails, and an item without any release
// id that must be skipped.
func collectionFixture(t *testing.T) roundTripFunc {
	t.Helper()
	return func(r *http.Request) (*http.Response, error) {
		switch r.URL.Path {
		case "/users/alice/collection/folders/0/releases":
			if r.URL.Query().Get("page") == "2" {
				return jsonResponse(http.StatusOK, map[string]any{
					"pagination": map[string]any{"page": 2, "pages": 2, "items": 3},
					"releases": []map[string]any{
						{
							"date_added": "2024-03-03",
							"basic_information": map[string]any{
								"title": "No Identity",
							},
						},
					},
				}), nil
			}
			return jsonResponse(http.StatusOK, map[string]any{
				"pagination": map[string]any{"page": 1, "pages": 2, "items": 3},
				"releases": []map[string]any{
					{
						"id":         101,
						"date_added": "2024-01-01",
						"basic_information": map[string]any{
							"id":    101,
							"title": "Album A (listing)",
							"formats": []map[string]any{
								{"name": "CD"},
							},
						},
					},
					{
						"id":         102,
						"date_added": "2024-02-02",
						"basic_information": map[string]any{
							"id":    102,
							"title": "Album B",
							"formats": []map[string]any{
								{"name": "CD"},
							},
						},
					},
				},
			}), nil
		case "/releases/101":
			return jsonResponse(http.StatusOK, map[string]any{
				"id":    101,
				"title": "Album A",
				"formats": []map[string]any{
					{"name": "Vinyl", "qty": "1", "descriptions": []string{"LP"}},
				},
			}), nil
		case "/releases/102":
			return jsonResponse(http.StatusInternalServerError, map[string]any{"message": "boom"}), nil
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
			return nil, nil
		}
	}
}

func newTestService(t *testing.T, includeFull bool) *SyncService {
	t.Helper()
	cfg := testConfig()
	cfg.IncludeFullRelease = includeFull
	svc := NewSyncService(cfg, zerolog.Nop())
	svc.client.httpClient = &http.Client{Transport: collectionFixture(t)}
	return svc
}

func TestFetchRowsEndToEnd(t *testing.T) {
	svc := newTestService(t, true)

	rows, err := svc.FetchRows(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Three items, one without a release id: two rows, listing order kept.
	if len(rows) != 2 {
		t.Fatalf("rows=%d", len(rows))
	}

	a := rows[0]
	if a.ReleaseID != 101 || a.Title != "Album A" {
		t.Fatalf("unexpected row A: %+v", a)
	}
	if a.Format != "Vinyl LP x1" || a.Variant != "" {
		t.Fatalf("unexpected row A format: %+v", a)
	}
	if a.DateAdded != "2024-01-01" {
		t.Fatalf("unexpected row A date: %+v", a)
	}

	b := rows[1]
	if b.ReleaseID != 102 || b.Title != "Album B" {
		t.Fatalf("unexpected row B: %+v", b)
	}
	if b.Format != "CD" || b.Variant != "" {
		t.Fatalf("unexpected row B format: %+v", b)
	}
}

func TestFetchRowsFailedEnrichmentMatchesDisabled(t *testing.T) {
	enriched, err := newTestService(t, true).FetchRows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	basicOnly, err := newTestService(t, false).FetchRows(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(enriched) != len(basicOnly) {
		t.Fatalf("row counts differ: %d vs %d", len(enriched), len(basicOnly))
	}
	// Item B's detail fetch fails, so its row must be field-for-field the
	// row a basic-only run produces.
	if enriched[1] != basicOnly[1] {
		t.Fatalf("degraded row differs:\n%+v\n%+v", enriched[1], basicOnly[1])
	}
}

func TestFetchRowsConnectionErrorContained(t *testing.T) {
	cfg := testConfig()
	svc := NewSyncService(cfg, zerolog.Nop())
	svc.client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path == "/releases/101" {
				return nil, errors.New("connection reset by peer")
			}
			return jsonResponse(http.StatusOK, map[string]any{
				"pagination": map[string]any{"page": 1, "pages": 1, "items": 1},
				"releases": []map[string]any{
					{
						"id":         101,
						"date_added": "2024-01-01",
						"basic_information": map[string]any{
							"id":    101,
							"title": "Album A (listing)",
							"formats": []map[string]any{
								{"name": "CD"},
							},
						},
					},
				},
			}), nil
		}),
	}

	rows, err := svc.FetchRows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0].Title != "Album A (listing)" || rows[0].Format != "CD" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestFetchRowsListingErrorIsFatal(t *testing.T) {
	cfg := testConfig()
	svc := NewSyncService(cfg, zerolog.Nop())
	svc.client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, map[string]any{"message": "bad token"}), nil
		}),
	}

	if _, err := svc.FetchRows(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
