// Package version carries the service version reported by the /version
// endpoint and the CLI.
package version

const Version = "0.3.0"
