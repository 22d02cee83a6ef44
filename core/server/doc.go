// Package server holds the HTTP server configuration.
//
// The Config struct defines the HTTP port, the API key checked by the auth
// middleware, and how long loaded snapshots stay cached between requests.
// It is embedded by core/config and read by the start command.
package server
