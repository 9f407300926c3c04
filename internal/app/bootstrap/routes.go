// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authrolefeature "github.com/scamwatch/scamwatch/internal/app/features/authrole"
	errorsfeature "github.com/scamwatch/scamwatch/internal/app/features/errors"
	healthfeature "github.com/scamwatch/scamwatch/internal/app/features/health"
	reportsfeature "github.com/scamwatch/scamwatch/internal/app/features/reports"
	uploadfeature "github.com/scamwatch/scamwatch/internal/app/features/upload"
	usersfeature "github.com/scamwatch/scamwatch/internal/app/features/users"
	"github.com/scamwatch/scamwatch/internal/app/store/imagestore"
	reportstore "github.com/scamwatch/scamwatch/internal/app/store/reports"
	"github.com/scamwatch/scamwatch/internal/app/system/auth"
	"github.com/scamwatch/scamwatch/internal/app/system/authz"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. ScamWatch verifies the Whop user token
// globally, then mounts JSON feature routers: health, auth role, reports,
// user lookup and upload.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier, err := auth.NewVerifier(appCfg.WhopAppID, appCfg.WhopJWTPublicKey, deps.Whop, logger)
	if err != nil {
		logger.Error("token verifier init failed", zap.Error(err))
		return nil, err
	}

	roles := authz.NewResolver(deps.Whop, logger)
	errLog := errorsfeature.NewErrorLogger(logger)

	images, err := buildImageStore(appCfg)
	if err != nil {
		logger.Error("image store init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: verifies the Whop user token and resolves
	// the acting company. Handlers read the result via auth.CurrentIdentity.
	r.Use(verifier.VerifyUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authRoleHandler := authrolefeature.NewHandler(roles, logger)
	r.Mount("/auth", authrolefeature.Routes(authRoleHandler))

	reportsHandler := reportsfeature.NewHandler(reportstore.New(deps.MongoDatabase), roles, deps.Whop, errLog, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler))

	usersHandler := usersfeature.NewHandler(deps.Whop, errLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	uploadHandler := uploadfeature.NewHandler(images, appCfg.UploadMaxBytes, errLog, logger)
	r.Mount("/upload", uploadfeature.Routes(uploadHandler))

	// Locally stored proof images are served straight from disk; the S3
	// backend returns bucket URLs so this mount is unused there.
	if appCfg.StorageType == "local" {
		r.Handle("/files/*", fileserver.Handler("/files", appCfg.StorageLocalPath))
	}

	return r, nil
}

// buildImageStore picks the proof-image backend from config. Validation
// in ValidateConfig guarantees the required fields are present.
func buildImageStore(appCfg AppConfig) (imagestore.Store, error) {
	if appCfg.StorageType == "s3" {
		return imagestore.NewS3(imagestore.S3Config{
			Endpoint:        appCfg.StorageS3Endpoint,
			Region:          appCfg.StorageS3Region,
			Bucket:          appCfg.StorageS3Bucket,
			AccessKeyID:     appCfg.StorageS3AccessKey,
			SecretAccessKey: appCfg.StorageS3SecretKey,
			PublicURL:       appCfg.StorageS3PublicURL,
		}), nil
	}
	return imagestore.NewLocal(appCfg.StorageLocalPath, appCfg.BaseURL)
}
