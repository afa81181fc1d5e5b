// Package constants holds values shared across layers.
package constants

const (
	// EnvDevelop is the env name used for local development.
	EnvDevelop = "develop"

	// PubSubProviderLocal pushes events straight to a worker over HTTP.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"

	// HeaderServiceKey carries the shared key for internal endpoints.
	HeaderServiceKey = "X-Service-Key"
)
