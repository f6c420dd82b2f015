package journal

import (
	"github.com/google/uuid"
)

// MockClient is an in-memory ClientAPI for handler tests. Canned responses
// are set on the public fields; the Last* fields record what the handler
// sent so tests can assert on the translated request.
type MockClient struct {
	Err error

	Journal     Journal
	Journals    JournalsList
	Entry       Entry
	Entries     Entries
	Results     SearchResults
	Permissions JournalPermissions
	Scopes      []ScopeSpec

	LastAuth        Auth
	LastJournalID   uuid.UUID
	LastEntryID     uuid.UUID
	LastEntry       EntryCreate
	LastPack        []EntryCreate
	LastTagsAction  TagsAction
	LastSearch      SearchParams
	LastHolderType  HolderType
	LastHolderID    uuid.UUID
	LastPermissions []string
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) SetError(err error) {
	c.Err = err
}

func (c *MockClient) CreateJournal(auth Auth, name string) (Journal, error) {
	c.LastAuth = auth
	return c.Journal, c.Err
}

func (c *MockClient) ListJournals(auth Auth) (JournalsList, error) {
	c.LastAuth = auth
	return c.Journals, c.Err
}

func (c *MockClient) DeleteJournal(auth Auth, journalID uuid.UUID) (Journal, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	return c.Journal, c.Err
}

func (c *MockClient) ListPublicJournals(userID uuid.UUID) (JournalsList, error) {
	return c.Journals, c.Err
}

func (c *MockClient) CreateEntry(auth Auth, journalID uuid.UUID, entry EntryCreate) (Entry, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	c.LastEntry = entry
	return c.Entry, c.Err
}

func (c *MockClient) CreateEntriesPack(auth Auth, journalID uuid.UUID, entries []EntryCreate) (Entries, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	c.LastPack = entries
	return c.Entries, c.Err
}

func (c *MockClient) GetEntry(auth Auth, journalID, entryID uuid.UUID) (Entry, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	c.LastEntryID = entryID
	return c.Entry, c.Err
}

func (c *MockClient) ListEntries(auth Auth, journalID uuid.UUID) (Entries, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	return c.Entries, c.Err
}

func (c *MockClient) UpdateEntry(auth Auth, journalID, entryID uuid.UUID, entry EntryCreate, tagsAction TagsAction) (Entry, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	c.LastEntryID = entryID
	c.LastEntry = entry
	c.LastTagsAction = tagsAction
	return c.Entry, c.Err
}

func (c *MockClient) DeleteEntry(auth Auth, journalID, entryID uuid.UUID) (Entry, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	c.LastEntryID = entryID
	return c.Entry, c.Err
}

func (c *MockClient) Search(auth Auth, journalID uuid.UUID, params SearchParams) (SearchResults, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	c.LastSearch = params
	return c.Results, c.Err
}

func (c *MockClient) PublicSearch(journalID uuid.UUID, params SearchParams) (SearchResults, error) {
	c.LastJournalID = journalID
	c.LastSearch = params
	return c.Results, c.Err
}

func (c *MockClient) GetJournalPermissions(auth Auth, journalID uuid.UUID) (JournalPermissions, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	return c.Permissions, c.Err
}

func (c *MockClient) UpdateJournalScopes(auth Auth, journalID uuid.UUID, holderType HolderType, holderID uuid.UUID, permissions []string) ([]ScopeSpec, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	c.LastHolderType = holderType
	c.LastHolderID = holderID
	c.LastPermissions = permissions
	return c.Scopes, c.Err
}

func (c *MockClient) DeleteJournalScopes(auth Auth, journalID uuid.UUID, holderType HolderType, holderID uuid.UUID, permissions []string) ([]ScopeSpec, error) {
	c.LastAuth = auth
	c.LastJournalID = journalID
	c.LastHolderType = holderType
	c.LastHolderID = holderID
	c.LastPermissions = permissions
	return c.Scopes, c.Err
}
