package engagementRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

func (repo *MongoEngagementRepo) CreateRequest(ctx context.Context, req *models.ServiceRequest) error {
	if _, err := repo.requestColl.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to insert service request: %w", err)
	}
	return nil
}

func (repo *MongoEngagementRepo) GetRequest(ctx context.Context, id string) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := repo.requestColl.FindOne(ctx, bson.M{"id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service request: %w", err)
	}
	return &req, nil
}

func (repo *MongoEngagementRepo) AddRequestPhoto(ctx context.Context, requestID, url string) error {
	res, err := repo.requestColl.UpdateOne(ctx,
		bson.M{"id": requestID},
		bson.M{
			"$addToSet": bson.M{"photoUrls": url},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return fmt.Errorf("failed to add request photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoEngagementRepo) CreateQuote(ctx context.Context, q *models.Quote) error {
	if _, err := repo.quoteColl.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

func (repo *MongoEngagementRepo) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	var q models.Quote
	err := repo.quoteColl.FindOne(ctx, bson.M{"id": id}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	return &q, nil
}

func (repo *MongoEngagementRepo) ListQuotesByRequest(ctx context.Context, requestID string) ([]models.Quote, error) {
	cur, err := repo.quoteColl.Find(ctx, bson.M{"requestId": requestID})
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer cur.Close(ctx)
	var quotes []models.Quote
	if err := cur.All(ctx, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}
	return quotes, nil
}

func (repo *MongoEngagementRepo) CreateFee(ctx context.Context, fee *models.ReferralFee) error {
	if _, err := repo.feeColl.InsertOne(ctx, fee); err != nil {
		return fmt.Errorf("failed to insert referral fee: %w", err)
	}
	return nil
}

func (repo *MongoEngagementRepo) GetFee(ctx context.Context, id string) (*models.ReferralFee, error) {
	var fee models.ReferralFee
	err := repo.feeColl.FindOne(ctx, bson.M{"id": id}).Decode(&fee)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch referral fee: %w", err)
	}
	return &fee, nil
}

func (repo *MongoEngagementRepo) GetFeeBySession(ctx context.Context, sessionID string) (*models.ReferralFee, error) {
	var fee models.ReferralFee
	err := repo.feeColl.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&fee)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch referral fee by session: %w", err)
	}
	return &fee, nil
}

func (repo *MongoEngagementRepo) SetFeeSession(ctx context.Context, feeID, sessionID string) error {
	res, err := repo.feeColl.UpdateOne(ctx,
		bson.M{"id": feeID},
		bson.M{"$set": bson.M{"sessionId": sessionID, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("failed to set fee session: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoEngagementRepo) SetFeeRefundable(ctx context.Context, feeID string, refundable bool) error {
	res, err := repo.feeColl.UpdateOne(ctx,
		bson.M{"id": feeID},
		bson.M{"$set": bson.M{"refundable": refundable, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("failed to set fee refundable flag: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoEngagementRepo) ListStalePendingFees(ctx context.Context, olderThan time.Time) ([]models.ReferralFee, error) {
	cur, err := repo.feeColl.Find(ctx, bson.M{
		"status":    models.FeeStatusPending,
		"createdAt": bson.M{"$lt": olderThan},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stale pending fees: %w", err)
	}
	defer cur.Close(ctx)
	var fees []models.ReferralFee
	if err := cur.All(ctx, &fees); err != nil {
		return nil, fmt.Errorf("failed to decode fees: %w", err)
	}
	return fees, nil
}

func (repo *MongoEngagementRepo) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	if _, err := repo.appointmentColl.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (repo *MongoEngagementRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var a models.Appointment
	err := repo.appointmentColl.FindOne(ctx, bson.M{"id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return &a, nil
}

func (repo *MongoEngagementRepo) GetAppointmentByRequest(ctx context.Context, requestID string) (*models.Appointment, error) {
	var a models.Appointment
	err := repo.appointmentColl.FindOne(ctx, bson.M{"requestId": requestID}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment by request: %w", err)
	}
	return &a, nil
}

func (repo *MongoEngagementRepo) CreateCancellation(ctx context.Context, rec *models.CancellationRecord) error {
	if _, err := repo.cancellationColl.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert cancellation record: %w", err)
	}
	return nil
}
