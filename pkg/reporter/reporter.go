// Package reporter is the diagnostic side channel. Events that are worth
// knowing about but must never fail a request (unrecognized blockchain
// addresses, mostly) are reported here instead of being raised.
package reporter

import (
	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/moonstream-to/entity/pkg/journal"
)

type Reporter interface {
	Report(title, content string, tags []string)
}

// JournalReporter writes reports as entries into a dedicated reports journal.
// Reports are fire and forget: failures are logged and dropped.
type JournalReporter struct {
	client    journal.ClientAPI
	auth      journal.Auth
	journalID uuid.UUID
	sessionID string
}

func NewJournalReporter(client journal.ClientAPI, token string, journalID uuid.UUID) *JournalReporter {
	return &JournalReporter{
		client:    client,
		auth:      journal.Auth{Token: token, AuthType: journal.AuthTypeBearer},
		journalID: journalID,
		sessionID: uuid.NewString(),
	}
}

func (r *JournalReporter) Report(title, content string, tags []string) {
	entry := journal.EntryCreate{
		Title:       title,
		Content:     content,
		Tags:        append(tags, "session:"+r.sessionID),
		ContextType: "report",
	}

	go func() {
		if _, err := r.client.CreateEntry(r.auth, r.journalID, entry); err != nil {
			log.Warnf("Failed to publish report '%s': %s", title, err)
		}
	}()
}

// LogReporter only logs reports. It is the fallback when no reports journal
// is configured.
type LogReporter struct{}

func NewLogReporter() *LogReporter {
	return &LogReporter{}
}

func (r *LogReporter) Report(title, content string, tags []string) {
	log.WithField("tags", tags).Warnf("%s: %s", title, content)
}
