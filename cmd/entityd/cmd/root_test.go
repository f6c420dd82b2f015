package cmd

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/moonstream-to/entity/pkg/config"
	"github.com/moonstream-to/entity/pkg/journal"
	"github.com/moonstream-to/entity/pkg/reporter"
)

func TestBuildReporterWithoutReportsJournal(t *testing.T) {
	c := config.NewMapConfig(map[string]string{})

	rep := buildReporter(c, journal.NewMockClient())
	assert.IsType(t, &reporter.LogReporter{}, rep)
}

func TestBuildReporterPartialConfigFallsBack(t *testing.T) {
	c := config.NewMapConfig(map[string]string{
		"ENTITY_REPORTS_TOKEN": "reports-token",
	})

	rep := buildReporter(c, journal.NewMockClient())
	assert.IsType(t, &reporter.LogReporter{}, rep)
}

func TestBuildReporterWithReportsJournal(t *testing.T) {
	c := config.NewMapConfig(map[string]string{
		"ENTITY_REPORTS_TOKEN":      "reports-token",
		"ENTITY_REPORTS_JOURNAL_ID": uuid.NewString(),
	})

	rep := buildReporter(c, journal.NewMockClient())
	assert.IsType(t, &reporter.JournalReporter{}, rep)
}

func TestWhitelistSkipper(t *testing.T) {
	tests := []struct {
		path    string
		skipped bool
	}{
		{path: "/ping", skipped: true},
		{path: "/now", skipped: true},
		{path: "/version", skipped: true},
		{path: "/public/collections", skipped: true},
		{path: "/public/collections/abc/search", skipped: true},
		{path: "/collections", skipped: false},
		{path: "/collections/abc/entities", skipped: false},
	}

	e := echo.New()
	for _, test := range tests {
		req := httptest.NewRequest("GET", test.path, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, test.skipped, whitelistSkipper(c), "path %s", test.path)
	}
}
