package discogs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"discosync/internal"
	"discosync/internal/config"
)

type Client struct {
	cfg        config.Config
	httpClient *http.Client
}

// StatusError is a non-2xx response from the Discogs API. It is the only
// error kind the sync loop contains per item; everything else aborts the run.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("discogs api error: status=%d body=%s", e.StatusCode, e.Body)
}

type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Items int `json:"items"`
}

type collectionPayload struct {
	Pagination Pagination       `json:"pagination"`
	Releases   []map[string]any `json:"releases"`
}

type CollectionPage struct {
	Pagination Pagination
	Items      []internal.CollectionItem
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.DiscogsTimeoutMs) * time.Millisecond},
	}
}

// GetCollectionPage fetches one page of the user's "All" collection folder.
func (c *Client) GetCollectionPage(ctx context.Context, page int) (CollectionPage, error) {
	endpoint := fmt.Sprintf("users/%s/collection/folders/0/releases", url.PathEscape(c.cfg.DiscogsUsername))
	body, err := c.fetchJSON(ctx, endpoint, map[string]string{
		"page":     strconv.Itoa(page),
		"per_page": strconv.Itoa(c.cfg.PerPage),
	})
	if err != nil {
		return CollectionPage{}, err
	}

	var payload collectionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return CollectionPage{}, err
	}

	out := CollectionPage{
		Pagination: payload.Pagination,
		Items:      make([]internal.CollectionItem, 0, len(payload.Releases)),
	}
	for _, raw := range payload.Releases {
		out.Items = append(out.Items, toCollectionItem(raw))
	}
	return out, nil
}

// GetRelease fetches the full record for one release.
func (c *Client) GetRelease(ctx context.Context, releaseID int) (*internal.ReleaseRecord, error) {
	body, err := c.fetchJSON(ctx, "releases/"+strconv.Itoa(releaseID), nil)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	record := toReleaseRecord(raw)
	return &record, nil
}

func (c *Client) fetchJSON(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	if strings.TrimSpace(c.cfg.DiscogsToken) == "" {
		return nil, errors.New("missing DISCOGS_TOKEN")
	}

	baseURL := strings.TrimRight(c.cfg.DiscogsBaseURL, "/") + "/"
	u, err := url.Parse(baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	for k, v := range params {
		if strings.TrimSpace(v) != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Discogs token="+c.cfg.DiscogsToken)
	req.Header.Set("User-Agent", c.cfg.DiscogsUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func toCollectionItem(raw map[string]any) internal.CollectionItem {
	item := internal.CollectionItem{}
	item.ReleaseID, _ = toInt(raw["id"])
	item.DateAdded = toText(raw["date_added"])
	if basic, ok := raw["basic_information"].(map[string]any); ok {
		item.Basic = toReleaseRecord(basic)
	}
	return item
}

// toReleaseRecord coerces a raw payload into a typed record. Total over any
// input: missing or malformed fields become zero values.
func toReleaseRecord(raw map[string]any) internal.ReleaseRecord {
	record := internal.ReleaseRecord{}
	record.ID, _ = toInt(raw["id"])
	record.MasterID, _ = toInt(raw["master_id"])
	record.Title = toText(raw["title"])
	record.Country = toText(raw["country"])
	record.Released = toText(raw["released"])
	record.ReleasedFormatted = toText(raw["released_formatted"])
	record.Year, _ = toInt(raw["year"])
	record.ResourceURL = toText(raw["resource_url"])
	record.Artists = toNameEntries(raw["artists"])
	record.Labels = toLabelEntries(raw["labels"])
	record.Formats = toFormatEntries(raw["formats"])
	record.Genres = toStringSlice(raw["genres"])
	record.Styles = toStringSlice(raw["styles"])
	record.Identifiers = toIdentifiers(raw["identifiers"])
	return record
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case json.Number:
		i, err := t.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func toStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func toNameEntries(v any) []internal.NameEntry {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]internal.NameEntry, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, internal.NameEntry{Name: strings.TrimSpace(toText(m["name"]))})
	}
	return out
}

func toLabelEntries(v any) []internal.LabelEntry {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]internal.LabelEntry, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, internal.LabelEntry{
			Name:  strings.TrimSpace(toText(m["name"])),
			Catno: strings.TrimSpace(toText(m["catno"])),
		})
	}
	return out
}

func toFormatEntries(v any) []internal.FormatEntry {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]internal.FormatEntry, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, internal.FormatEntry{
			Name:         toText(m["name"]),
			Qty:          toText(m["qty"]),
			Text:         toText(m["text"]),
			Descriptions: toStringSlice(m["descriptions"]),
		})
	}
	return out
}

func toIdentifiers(v any) []internal.Identifier {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]internal.Identifier, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, internal.Identifier{
			Type:  toText(m["type"]),
			Value: toText(m["value"]),
		})
	}
	return out
}
