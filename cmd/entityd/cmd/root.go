package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/moonstream-to/entity/pkg/config"
	"github.com/moonstream-to/entity/pkg/entity/webapi/apimiddleware"
	"github.com/moonstream-to/entity/pkg/journal"
	"github.com/moonstream-to/entity/pkg/reporter"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "entityd",
	Short: "Run the entity API server",
	Long: `entityd serves the entity API: collections and entities as a
structured vocabulary over an external journal document store. The server
holds no state of its own; every request is translated into journal store
calls using the caller's own credentials.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := config.MustLoadFromDotenv()

		journalURL := c.MustGetKey("JOURNAL_API_URL")
		applicationID := c.MustGetKey("ENTITY_APPLICATION_ID")
		applicationIDHeader := c.GetKeyWithDefault("ENTITY_APPLICATION_ID_HEADER", "x-application-id")
		timeout := time.Duration(c.GetIntKeyWithDefault("ENTITY_REQUEST_TIMEOUT", 10)) * time.Second

		journalClient := journal.NewClient(journalURL, applicationIDHeader, applicationID, timeout)
		log.Infof("Journal API: %s", journal.NormalizeURL(journalURL))

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		origins := strings.Split(c.MustGetKey("ENTITY_CORS_ALLOWED_ORIGINS"), ",")
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     origins,
			AllowCredentials: true,
		}))

		e.Use(apimiddleware.TokenAuth(apimiddleware.TokenAuthConfig{
			Skipper: whitelistSkipper,
		}))

		setupRoutes(e, RouteOpts{
			Client:   journalClient,
			Reporter: buildReporter(c, journalClient),
		})

		if err := e.Start(":" + c.GetKeyWithDefault("ENTITY_PORT", "8930")); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// whitelistSkipper exempts the status endpoints and the public surface from
// token auth.
func whitelistSkipper(c echo.Context) bool {
	path := c.Request().URL.Path
	switch path {
	case "/ping", "/now", "/version":
		return true
	}

	return strings.HasPrefix(path, "/public/")
}

func buildReporter(c config.Configer, client journal.ClientAPI) reporter.Reporter {
	token := c.GetKey("ENTITY_REPORTS_TOKEN")
	journalIDRaw := c.GetKey("ENTITY_REPORTS_JOURNAL_ID")
	if token == "" || journalIDRaw == "" {
		log.Info("No reports journal configured, diagnostic reports go to the log")
		return reporter.NewLogReporter()
	}

	journalID, err := uuid.Parse(journalIDRaw)
	if err != nil {
		log.Fatalf("ENTITY_REPORTS_JOURNAL_ID isn't a valid uuid: %s", err)
	}

	return reporter.NewJournalReporter(client, token, journalID)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
