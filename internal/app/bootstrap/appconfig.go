// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, CORS); AppConfig is
// everything specific to ScamWatch: the Mongo backend, the Whop
// credentials, and proof-image storage.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Whop platform configuration
	WhopAPIKey       string // API key for server-to-server Whop calls
	WhopAppID        string // App ID; the audience of user-token JWTs
	WhopAPIBaseURL   string // Override for the Whop API base URL (tests, staging)
	WhopJWTPublicKey string // PEM-encoded ES256 public key user tokens are signed with

	// Proof-image storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads/proofs")

	// S3/R2 configuration (only used if StorageType is "s3")
	StorageS3Endpoint  string // Custom endpoint for R2 or S3-compatible stores
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3AccessKey string
	StorageS3SecretKey string
	StorageS3PublicURL string // Base URL stored objects are served from

	// UploadMaxBytes caps proof-image uploads (bytes).
	UploadMaxBytes int64

	// Base URL this service is reachable at; used to build local file URLs.
	BaseURL string
}
