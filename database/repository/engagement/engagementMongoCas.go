package engagementRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// Conditional writes. Each update carries its precondition in the filter;
// MatchedCount == 0 means the precondition no longer held and the caller
// lost the race (or the record is gone). MongoDB applies a single-document
// update atomically, which is the only serialization point this repo needs.

func (repo *MongoEngagementRepo) MarkRequestQuoted(ctx context.Context, requestID string) error {
	_, err := repo.requestColl.UpdateOne(ctx,
		bson.M{"id": requestID, "status": models.RequestStatusCreated},
		bson.M{"$set": bson.M{
			"status":    models.RequestStatusQuoted,
			"updatedAt": time.Now().UTC(),
		}})
	if err != nil {
		return fmt.Errorf("failed to mark request quoted: %w", err)
	}
	// A no-match here just means another quote already moved it; not an error.
	return nil
}

func (repo *MongoEngagementRepo) ClaimSelection(ctx context.Context, requestID, quoteID string) (bool, error) {
	filter := bson.M{
		"id": requestID,
		"$or": bson.A{
			bson.M{"selectedQuoteId": bson.M{"$exists": false}},
			bson.M{"selectedQuoteId": ""},
		},
		"status": bson.M{"$in": bson.A{models.RequestStatusCreated, models.RequestStatusQuoted}},
	}
	update := bson.M{"$set": bson.M{
		"selectedQuoteId": quoteID,
		"status":          models.RequestStatusSelectedPending,
		"updatedAt":       time.Now().UTC(),
	}}
	res, err := repo.requestColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to claim selection: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoEngagementRepo) ReleaseSelection(ctx context.Context, requestID, quoteID string) (bool, error) {
	filter := bson.M{"id": requestID, "selectedQuoteId": quoteID}
	update := bson.M{"$set": bson.M{
		"selectedQuoteId": "",
		"status":          models.RequestStatusQuoted,
		"updatedAt":       time.Now().UTC(),
	}}
	res, err := repo.requestColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to release selection: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoEngagementRepo) SetRequestStatus(ctx context.Context, requestID, from, to string) (bool, error) {
	res, err := repo.requestColl.UpdateOne(ctx,
		bson.M{"id": requestID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return false, fmt.Errorf("failed to set request status: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoEngagementRepo) SetQuoteStatus(ctx context.Context, quoteID, from, to string) (bool, error) {
	res, err := repo.quoteColl.UpdateOne(ctx,
		bson.M{"id": quoteID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return false, fmt.Errorf("failed to set quote status: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoEngagementRepo) MarkFeePaid(ctx context.Context, feeID, paymentIntentID string) (bool, error) {
	now := time.Now().UTC()
	res, err := repo.feeColl.UpdateOne(ctx,
		bson.M{"id": feeID, "status": models.FeeStatusPending},
		bson.M{"$set": bson.M{
			"status":          models.FeeStatusPaid,
			"paymentIntentId": paymentIntentID,
			"paidAt":          now,
			"updatedAt":       now,
		}})
	if err != nil {
		return false, fmt.Errorf("failed to mark fee paid: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoEngagementRepo) SetFeeStatus(ctx context.Context, feeID, from, to string) (bool, error) {
	res, err := repo.feeColl.UpdateOne(ctx,
		bson.M{"id": feeID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return false, fmt.Errorf("failed to set fee status: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoEngagementRepo) SetAppointmentStatus(ctx context.Context, appointmentID, from, to string) (bool, error) {
	res, err := repo.appointmentColl.UpdateOne(ctx,
		bson.M{"id": appointmentID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return false, fmt.Errorf("failed to set appointment status: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoEngagementRepo) ConfirmAppointment(ctx context.Context, appointmentID string, startTime time.Time) (bool, error) {
	res, err := repo.appointmentColl.UpdateOne(ctx,
		bson.M{"id": appointmentID, "status": models.AppointmentStatusPendingInspection},
		bson.M{"$set": bson.M{
			"status":    models.AppointmentStatusConfirmed,
			"startTime": startTime,
			"updatedAt": time.Now().UTC(),
		}})
	if err != nil {
		return false, fmt.Errorf("failed to confirm appointment: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoEngagementRepo) AttachRevision(ctx context.Context, appointmentID string, amount int64) (bool, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"id":     appointmentID,
		"status": models.AppointmentStatusConfirmed,
		"$or": bson.A{
			bson.M{"revisedAmount": bson.M{"$exists": false}},
			bson.M{"revisedAmount": 0},
			bson.M{"revisedAccepted": true},
		},
	}
	update := bson.M{"$set": bson.M{
		"revisedAmount":   amount,
		"revisedAccepted": false,
		"revisedAt":       now,
		"updatedAt":       now,
	}}
	res, err := repo.appointmentColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to attach revision: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoEngagementRepo) AcceptRevision(ctx context.Context, appointmentID string) (bool, error) {
	filter := bson.M{
		"id":              appointmentID,
		"status":          models.AppointmentStatusConfirmed,
		"revisedAmount":   bson.M{"$gt": 0},
		"revisedAccepted": false,
	}
	update := bson.M{"$set": bson.M{
		"revisedAccepted": true,
		"updatedAt":       time.Now().UTC(),
	}}
	res, err := repo.appointmentColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to accept revision: %w", err)
	}
	return res.MatchedCount == 1, nil
}
