// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scamwatch/scamwatch/internal/app/system/whop"
)

// DBDeps holds database and backend dependencies for the app. The Whop
// client lives here alongside the Mongo handles so everything external
// is constructed exactly once and injected.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Whop          whop.API
}
