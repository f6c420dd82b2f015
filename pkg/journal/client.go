package journal

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// SearchParams are the knobs on the store's full-text search endpoint.
type SearchParams struct {
	Query   string
	Filters []string
	Limit   int
	Offset  int
	Content bool
}

// ClientAPI is the journal store surface the entity API is built on. All
// entity state lives behind this interface; the service itself persists
// nothing.
type ClientAPI interface {
	CreateJournal(auth Auth, name string) (Journal, error)
	ListJournals(auth Auth) (JournalsList, error)
	DeleteJournal(auth Auth, journalID uuid.UUID) (Journal, error)
	ListPublicJournals(userID uuid.UUID) (JournalsList, error)

	CreateEntry(auth Auth, journalID uuid.UUID, entry EntryCreate) (Entry, error)
	CreateEntriesPack(auth Auth, journalID uuid.UUID, entries []EntryCreate) (Entries, error)
	GetEntry(auth Auth, journalID, entryID uuid.UUID) (Entry, error)
	ListEntries(auth Auth, journalID uuid.UUID) (Entries, error)
	UpdateEntry(auth Auth, journalID, entryID uuid.UUID, entry EntryCreate, tagsAction TagsAction) (Entry, error)
	DeleteEntry(auth Auth, journalID, entryID uuid.UUID) (Entry, error)

	Search(auth Auth, journalID uuid.UUID, params SearchParams) (SearchResults, error)
	PublicSearch(journalID uuid.UUID, params SearchParams) (SearchResults, error)

	GetJournalPermissions(auth Auth, journalID uuid.UUID) (JournalPermissions, error)
	UpdateJournalScopes(auth Auth, journalID uuid.UUID, holderType HolderType, holderID uuid.UUID, permissions []string) ([]ScopeSpec, error)
	DeleteJournalScopes(auth Auth, journalID uuid.UUID, holderType HolderType, holderID uuid.UUID, permissions []string) ([]ScopeSpec, error)
}

type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a journal store client. The application id header is sent
// on every request so the store can attribute traffic to this service.
func NewClient(apiURL, applicationIDHeader, applicationID string, timeout time.Duration) *Client {
	c := resty.New().SetTimeout(timeout)
	if applicationIDHeader != "" && applicationID != "" {
		c.SetHeader(applicationIDHeader, applicationID)
	}

	return &Client{
		http:    c,
		baseURL: NormalizeURL(apiURL),
	}
}

// NormalizeURL defaults the scheme to http and strips any trailing slash so
// endpoint paths can be appended directly.
func NormalizeURL(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "http://" + rawURL
	}

	return strings.TrimRight(rawURL, "/")
}

func (c *Client) url(format string, args ...interface{}) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

func (c *Client) request(auth Auth) *resty.Request {
	req := c.http.R()
	if auth.Token != "" {
		req.SetHeader("Authorization", fmt.Sprintf("%s %s", auth.AuthType.Scheme(), auth.Token))
	}

	return req
}

func checked(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}

	if resp.IsError() {
		return toErrorFromResponse(resp)
	}

	return nil
}

func (c *Client) CreateJournal(auth Auth, name string) (Journal, error) {
	var journal Journal
	resp, err := c.request(auth).
		SetBody(map[string]string{"name": name}).
		SetResult(&journal).
		Post(c.url("/journals"))

	return journal, checked(resp, err)
}

func (c *Client) ListJournals(auth Auth) (JournalsList, error) {
	var journals JournalsList
	resp, err := c.request(auth).
		SetResult(&journals).
		Get(c.url("/journals"))

	return journals, checked(resp, err)
}

func (c *Client) DeleteJournal(auth Auth, journalID uuid.UUID) (Journal, error) {
	var journal Journal
	resp, err := c.request(auth).
		SetResult(&journal).
		Delete(c.url("/journals/%s", journalID))

	return journal, checked(resp, err)
}

func (c *Client) ListPublicJournals(userID uuid.UUID) (JournalsList, error) {
	var journals JournalsList
	resp, err := c.http.R().
		SetQueryParam("user_id", userID.String()).
		SetResult(&journals).
		Get(c.url("/journals/public"))

	return journals, checked(resp, err)
}

func (c *Client) CreateEntry(auth Auth, journalID uuid.UUID, entry EntryCreate) (Entry, error) {
	var created Entry
	resp, err := c.request(auth).
		SetBody(entry).
		SetResult(&created).
		Post(c.url("/journals/%s/entries", journalID))

	return created, checked(resp, err)
}

func (c *Client) CreateEntriesPack(auth Auth, journalID uuid.UUID, entries []EntryCreate) (Entries, error) {
	var created Entries
	resp, err := c.request(auth).
		SetBody(map[string][]EntryCreate{"entries": entries}).
		SetResult(&created).
		Post(c.url("/journals/%s/entries/pack", journalID))

	return created, checked(resp, err)
}

func (c *Client) GetEntry(auth Auth, journalID, entryID uuid.UUID) (Entry, error) {
	var entry Entry
	resp, err := c.request(auth).
		SetResult(&entry).
		Get(c.url("/journals/%s/entries/%s", journalID, entryID))

	return entry, checked(resp, err)
}

func (c *Client) ListEntries(auth Auth, journalID uuid.UUID) (Entries, error) {
	var entries Entries
	resp, err := c.request(auth).
		SetResult(&entries).
		Get(c.url("/journals/%s/entries", journalID))

	return entries, checked(resp, err)
}

func (c *Client) UpdateEntry(auth Auth, journalID, entryID uuid.UUID, entry EntryCreate, tagsAction TagsAction) (Entry, error) {
	var updated Entry
	resp, err := c.request(auth).
		SetQueryParam("tags_action", string(tagsAction)).
		SetBody(entry).
		SetResult(&updated).
		Put(c.url("/journals/%s/entries/%s", journalID, entryID))

	return updated, checked(resp, err)
}

func (c *Client) DeleteEntry(auth Auth, journalID, entryID uuid.UUID) (Entry, error) {
	var deleted Entry
	resp, err := c.request(auth).
		SetResult(&deleted).
		Delete(c.url("/journals/%s/entries/%s", journalID, entryID))

	return deleted, checked(resp, err)
}

func searchQueryValues(params SearchParams) url.Values {
	values := url.Values{}
	values.Set("q", params.Query)
	for _, filter := range params.Filters {
		values.Add("filters", filter)
	}
	values.Set("limit", strconv.Itoa(params.Limit))
	values.Set("offset", strconv.Itoa(params.Offset))
	values.Set("content", strconv.FormatBool(params.Content))

	return values
}

func (c *Client) Search(auth Auth, journalID uuid.UUID, params SearchParams) (SearchResults, error) {
	var results SearchResults
	resp, err := c.request(auth).
		SetQueryParamsFromValues(searchQueryValues(params)).
		SetResult(&results).
		Get(c.url("/journals/%s/search", journalID))

	return results, checked(resp, err)
}

func (c *Client) PublicSearch(journalID uuid.UUID, params SearchParams) (SearchResults, error) {
	var results SearchResults
	resp, err := c.http.R().
		SetQueryParamsFromValues(searchQueryValues(params)).
		SetResult(&results).
		Get(c.url("/journals/%s/public/search", journalID))

	return results, checked(resp, err)
}

func (c *Client) GetJournalPermissions(auth Auth, journalID uuid.UUID) (JournalPermissions, error) {
	var permissions JournalPermissions
	resp, err := c.request(auth).
		SetResult(&permissions).
		Get(c.url("/journals/%s/permissions", journalID))

	return permissions, checked(resp, err)
}

type scopesRequest struct {
	HolderType     HolderType `json:"holder_type"`
	HolderID       uuid.UUID  `json:"holder_id"`
	PermissionList []string   `json:"permission_list"`
}

func (c *Client) UpdateJournalScopes(auth Auth, journalID uuid.UUID, holderType HolderType, holderID uuid.UUID, permissions []string) ([]ScopeSpec, error) {
	var scopes ScopeSpecs
	resp, err := c.request(auth).
		SetBody(scopesRequest{HolderType: holderType, HolderID: holderID, PermissionList: permissions}).
		SetResult(&scopes).
		Post(c.url("/journals/%s/scopes", journalID))

	return scopes.Scopes, checked(resp, err)
}

func (c *Client) DeleteJournalScopes(auth Auth, journalID uuid.UUID, holderType HolderType, holderID uuid.UUID, permissions []string) ([]ScopeSpec, error) {
	var scopes ScopeSpecs
	resp, err := c.request(auth).
		SetBody(scopesRequest{HolderType: holderType, HolderID: holderID, PermissionList: permissions}).
		SetResult(&scopes).
		Delete(c.url("/journals/%s/scopes", journalID))

	return scopes.Scopes, checked(resp, err)
}
