package engagementRepo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/database"
)

// MongoEngagementRepo implements EngagementRepository on MongoDB.
type MongoEngagementRepo struct {
	requestColl      *mongo.Collection
	quoteColl        *mongo.Collection
	feeColl          *mongo.Collection
	appointmentColl  *mongo.Collection
	cancellationColl *mongo.Collection
}

// NewMongoEngagementRepo returns a repo bound to the configured database.
func NewMongoEngagementRepo() *MongoEngagementRepo {
	db := database.DB()
	repo := &MongoEngagementRepo{
		requestColl:      db.Collection("service_requests"),
		quoteColl:        db.Collection("quotes"),
		feeColl:          db.Collection("referral_fees"),
		appointmentColl:  db.Collection("appointments"),
		cancellationColl: db.Collection("cancellations"),
	}
	repo.ensureIndexes()
	return repo
}

func (repo *MongoEngagementRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	idxs := []struct {
		coll *mongo.Collection
		m    mongo.IndexModel
	}{
		{repo.requestColl, mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		{repo.quoteColl, mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		{repo.quoteColl, mongo.IndexModel{Keys: bson.D{{Key: "requestId", Value: 1}}}},
		{repo.feeColl, mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		{repo.feeColl, mongo.IndexModel{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetSparse(true)}},
		{repo.feeColl, mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}}},
		{repo.appointmentColl, mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		{repo.appointmentColl, mongo.IndexModel{Keys: bson.D{{Key: "requestId", Value: 1}}}},
		{repo.cancellationColl, mongo.IndexModel{Keys: bson.D{{Key: "appointmentId", Value: 1}}}},
	}
	for _, ix := range idxs {
		if _, err := ix.coll.Indexes().CreateOne(ctx, ix.m); err != nil {
			log.Printf("engagement repo: failed to ensure index on %s: %v", ix.coll.Name(), err)
		}
	}
}
