package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moonstream-to/entity/pkg/entity/client"
	"github.com/moonstream-to/entity/pkg/journal"
)

var (
	apiURL         string
	accessToken    string
	authTypeRaw    string
	timeoutSeconds int
)

var rootCmd = &cobra.Command{
	Use:   "entity",
	Short: "Entity API command line client",
	Long: `Manage entity collections and entities from the command line.
Credentials are passed with --token; point --api-url at any entity API
instance.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "https://api.moonstream.to/entity", "Entity API URL")
	rootCmd.PersistentFlags().StringVarP(&accessToken, "token", "t", "", "Access token")
	rootCmd.PersistentFlags().StringVar(&authTypeRaw, "auth-type", "bearer", "Authorization scheme: bearer or web3")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 10, "Request timeout in seconds")
}

func apiClient() *client.Client {
	return client.New(apiURL, time.Duration(timeoutSeconds)*time.Second)
}

func requestAuth() (journal.Auth, error) {
	if accessToken == "" {
		return journal.Auth{}, fmt.Errorf("an access token is required, pass one with --token")
	}

	switch strings.ToLower(authTypeRaw) {
	case "bearer":
		return journal.Auth{Token: accessToken, AuthType: journal.AuthTypeBearer}, nil
	case "web3":
		return journal.Auth{Token: accessToken, AuthType: journal.AuthTypeWeb3}, nil
	default:
		return journal.Auth{}, fmt.Errorf("unknown auth type '%s', expected bearer or web3", authTypeRaw)
	}
}

// printJSON writes a response to stdout the way the API would, one JSON
// object per invocation.
func printJSON(v interface{}) error {
	out, err := json.Marshal(v)
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}

// parseJSONFields decodes repeatable --required-field / --secondary-field
// flag values, each of which has to be a JSON object.
func parseJSONFields(raw []string) ([]map[string]interface{}, error) {
	fields := make([]map[string]interface{}, 0, len(raw))
	for _, fragment := range raw {
		var field map[string]interface{}
		if err := json.Unmarshal([]byte(fragment), &field); err != nil {
			return nil, fmt.Errorf("field '%s' isn't a JSON object: %s", fragment, err)
		}
		fields = append(fields, field)
	}

	return fields, nil
}

// flattenFields merges a list of single-key JSON objects into one map.
func flattenFields(fields []map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{})
	for _, field := range fields {
		for key, val := range field {
			flat[key] = val
		}
	}

	return flat
}
