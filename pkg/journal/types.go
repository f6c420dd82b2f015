package journal

import (
	"time"

	"github.com/google/uuid"
)

// AuthType is the authorization scheme a caller used. The journal store
// accepts plain bearer tokens and web3 signatures.
type AuthType string

const (
	AuthTypeBearer AuthType = "bearer"
	AuthTypeWeb3   AuthType = "web3"
)

// Scheme returns the Authorization header scheme for the auth type.
func (a AuthType) Scheme() string {
	switch a {
	case AuthTypeWeb3:
		return "Web3"
	default:
		return "Bearer"
	}
}

// Auth carries the caller credentials forwarded on every journal API call.
type Auth struct {
	Token    string
	AuthType AuthType
}

// HolderType identifies what kind of principal holds a permission scope.
type HolderType string

const (
	HolderTypeUser  HolderType = "user"
	HolderTypeToken HolderType = "token"
)

// TagsAction controls how an entry update treats existing tags.
type TagsAction string

const (
	TagsActionMerge   TagsAction = "merge"
	TagsActionReplace TagsAction = "replace"
)

type Journal struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JournalsList struct {
	Journals []Journal `json:"journals"`
}

// Entry is a single journal record. The store responds with two shapes: full
// entries and bare entry content (no id, no timestamps) on content updates.
// Both unmarshal into Entry, with the absent fields left nil.
type Entry struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Tags        []string   `json:"tags"`
	ContextType string     `json:"context_type,omitempty"`
	JournalURL  string     `json:"journal_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type Entries struct {
	Entries []Entry `json:"entries"`
}

// EntryCreate is the request body for creating a single entry, also used as
// one element of a bulk entries pack.
type EntryCreate struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	ContextType string   `json:"context_type,omitempty"`
}

type SearchResult struct {
	EntryURL   string     `json:"entry_url"`
	ContentURL string     `json:"content_url"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	Score      float64    `json:"score"`
}

type SearchResults struct {
	TotalResults int            `json:"total_results"`
	Offset       int            `json:"offset"`
	NextOffset   *int           `json:"next_offset,omitempty"`
	MaxScore     float64        `json:"max_score"`
	Results      []SearchResult `json:"results"`
}

// ScopeSpec is one permission grant as the store reports it.
type ScopeSpec struct {
	JournalID  uuid.UUID  `json:"journal_id"`
	HolderType HolderType `json:"holder_type"`
	HolderID   uuid.UUID  `json:"holder_id"`
	Permission string     `json:"permission"`
}

type ScopeSpecs struct {
	Scopes []ScopeSpec `json:"scopes"`
}

type JournalPermission struct {
	HolderType  HolderType `json:"holder_type"`
	HolderID    uuid.UUID  `json:"holder_id"`
	Permissions []string   `json:"permissions"`
}

type JournalPermissions struct {
	JournalID   uuid.UUID           `json:"journal_id"`
	Permissions []JournalPermission `json:"permissions"`
}
