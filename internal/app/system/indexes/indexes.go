// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureReports(ctx, db); err != nil {
		problems = append(problems, "reports: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureReports backs the two read paths: the admin review queue
// (company, newest first) and a member's own history (company + reporter,
// newest first).
func ensureReports(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("reports")
	models := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "company_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("company_created"),
		},
		{
			Keys: bson.D{
				{Key: "company_id", Value: 1},
				{Key: "reporter_user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("company_reporter_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}
