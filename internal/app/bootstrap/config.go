// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/scamwatch/scamwatch/internal/app/system/inputval"
)

// appConfigKeys defines the configuration keys for ScamWatch.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, whop_api_key, etc.
//   - Environment variables: SCAMWATCH_MONGO_URI, SCAMWATCH_WHOP_API_KEY, etc.
//   - Command-line flags: --mongo_uri, --whop_api_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "scamwatch", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Whop platform configuration
	{Name: "whop_api_key", Default: "", Desc: "Whop API key for server-to-server calls (required)"},
	{Name: "whop_app_id", Default: "", Desc: "Whop app ID; audience of user-token JWTs (required)"},
	{Name: "whop_api_base_url", Default: "", Desc: "Override for the Whop API base URL (blank uses the public API)"},
	{Name: "whop_jwt_public_key", Default: "", Desc: "PEM-encoded ES256 public key for user-token verification (required)"},

	// Proof-image storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads/proofs", Desc: "Local storage path for uploaded proof images"},

	// S3/R2 configuration
	{Name: "storage_s3_endpoint", Default: "", Desc: "Custom S3 endpoint (e.g., Cloudflare R2 account endpoint)"},
	{Name: "storage_s3_region", Default: "auto", Desc: "S3 region"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_access_key", Default: "", Desc: "S3 access key ID"},
	{Name: "storage_s3_secret_key", Default: "", Desc: "S3 secret access key"},
	{Name: "storage_s3_public_url", Default: "", Desc: "Base URL stored objects are served from"},

	{Name: "upload_max_bytes", Default: 5 << 20, Desc: "Max proof-image upload size in bytes (default 5 MiB)"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL this service is reachable at (for local file URLs)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SCAMWATCH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SCAMWATCH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		WhopAPIKey:       appValues.String("whop_api_key"),
		WhopAppID:        appValues.String("whop_app_id"),
		WhopAPIBaseURL:   appValues.String("whop_api_base_url"),
		WhopJWTPublicKey: appValues.String("whop_jwt_public_key"),

		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),

		StorageS3Endpoint:  appValues.String("storage_s3_endpoint"),
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3AccessKey: appValues.String("storage_s3_access_key"),
		StorageS3SecretKey: appValues.String("storage_s3_secret_key"),
		StorageS3PublicURL: appValues.String("storage_s3_public_url"),

		UploadMaxBytes: int64(appValues.Int("upload_max_bytes")),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// ScamWatch refuses to start without the Whop credentials: without them
// every request would fail verification anyway, and failing here makes
// the misconfiguration obvious.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.WhopAPIKey == "" {
		return fmt.Errorf("whop_api_key is required")
	}
	if appCfg.WhopAppID == "" {
		return fmt.Errorf("whop_app_id is required")
	}
	if appCfg.WhopJWTPublicKey == "" {
		return fmt.Errorf("whop_jwt_public_key is required")
	}

	switch appCfg.StorageType {
	case "local":
		// Local object URLs are BaseURL + "/files/" + key, and submit
		// validation only accepts absolute http(s) URLs, so an unset or
		// relative base_url would make every stored proof unusable.
		if !inputval.IsValidHTTPURL(appCfg.BaseURL) {
			return fmt.Errorf("storage_type 'local' requires base_url to be an absolute http(s) URL, got %q", appCfg.BaseURL)
		}
	case "s3":
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3AccessKey == "" || appCfg.StorageS3SecretKey == "" {
			return fmt.Errorf("storage_type 's3' requires storage_s3_bucket, storage_s3_access_key and storage_s3_secret_key")
		}
		if appCfg.StorageS3PublicURL == "" {
			return fmt.Errorf("storage_type 's3' requires storage_s3_public_url")
		}
	default:
		return fmt.Errorf("storage_type must be 'local' or 's3', got %q", appCfg.StorageType)
	}

	return nil
}
