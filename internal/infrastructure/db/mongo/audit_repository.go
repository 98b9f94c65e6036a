package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gamevault/license-server/internal/core/domain"
)

const auditCollection = "login_logs"

// MongoAuditRepository persists the append-only login attempt log.
// Timestamps are stored as epoch milliseconds, matching the precision the
// retention cutoff is expressed in.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoLoginAttempt struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    *string            `bson:"user_id"`
	Email     string             `bson:"email"`
	IP        string             `bson:"ip"`
	Success   bool               `bson:"success"`
	UserAgent string             `bson:"user_agent"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoAuditRepository) Append(ctx context.Context, attempt *domain.LoginAttempt) error {
	doc := mongoLoginAttempt{
		UserID:    attempt.UserID,
		Email:     attempt.Email,
		IP:        attempt.IP,
		Success:   attempt.Success,
		UserAgent: attempt.UserAgent,
		CreatedAt: attempt.CreatedAt.UnixMilli(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append login attempt: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) FindRecent(ctx context.Context, limit int64) ([]domain.LoginAttempt, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *MongoAuditRepository) FindByUser(ctx context.Context, userID string, limit int64) ([]domain.LoginAttempt, error) {
	return r.find(ctx, bson.M{"user_id": userID}, limit)
}

func (r *MongoAuditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff.UnixMilli()}})
	if err != nil {
		return 0, fmt.Errorf("prune login attempts: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoAuditRepository) find(ctx context.Context, filter bson.M, limit int64) ([]domain.LoginAttempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find login attempts: %w", err)
	}
	defer cur.Close(ctx)

	var attempts []domain.LoginAttempt
	for cur.Next(ctx) {
		var ma mongoLoginAttempt
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode login attempt: %w", err)
		}
		attempts = append(attempts, domain.LoginAttempt{
			ID:        ma.ID.Hex(),
			UserID:    ma.UserID,
			Email:     ma.Email,
			IP:        ma.IP,
			Success:   ma.Success,
			UserAgent: ma.UserAgent,
			CreatedAt: time.UnixMilli(ma.CreatedAt).UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate login attempts: %w", err)
	}
	return attempts, nil
}
