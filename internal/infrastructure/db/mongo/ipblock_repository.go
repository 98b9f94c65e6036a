package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gamevault/license-server/internal/core/domain"
)

const ipBlockCollection = "blocked_ips"

// MongoIPBlockRepository persists address blocks, keyed by ip with
// insert-or-replace semantics. A nil expires_at means permanent.
type MongoIPBlockRepository struct {
	coll *mongo.Collection
}

func NewIPBlockRepository(db *mongo.Database) *MongoIPBlockRepository {
	return &MongoIPBlockRepository{coll: db.Collection(ipBlockCollection)}
}

type mongoIPBlock struct {
	IP        string `bson:"_id"`
	Reason    string `bson:"reason"`
	BlockedAt int64  `bson:"blocked_at"`
	ExpiresAt *int64 `bson:"expires_at"`
}

func (r *MongoIPBlockRepository) FindActive(ctx context.Context, ip string, now time.Time) (*domain.IPBlock, error) {
	filter := bson.M{
		"_id": ip,
		"$or": bson.A{
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": now.UnixMilli()}},
		},
	}

	var mb mongoIPBlock
	if err := r.coll.FindOne(ctx, filter).Decode(&mb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find ip block: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *MongoIPBlockRepository) Upsert(ctx context.Context, block *domain.IPBlock) error {
	doc := mongoIPBlock{
		IP:        block.IP,
		Reason:    block.Reason,
		BlockedAt: block.BlockedAt.UnixMilli(),
	}
	if block.ExpiresAt != nil {
		ms := block.ExpiresAt.UnixMilli()
		doc.ExpiresAt = &ms
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": block.IP}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert ip block: %w", err)
	}
	return nil
}

func (r *MongoIPBlockRepository) Delete(ctx context.Context, ip string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": ip})
	if err != nil {
		return 0, fmt.Errorf("delete ip block: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoIPBlockRepository) FindAll(ctx context.Context) ([]domain.IPBlock, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "blocked_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list ip blocks: %w", err)
	}
	defer cur.Close(ctx)

	var blocks []domain.IPBlock
	for cur.Next(ctx) {
		var mb mongoIPBlock
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode ip block: %w", err)
		}
		blocks = append(blocks, *mb.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate ip blocks: %w", err)
	}
	return blocks, nil
}

func (mb *mongoIPBlock) toDomain() *domain.IPBlock {
	block := &domain.IPBlock{
		IP:        mb.IP,
		Reason:    mb.Reason,
		BlockedAt: time.UnixMilli(mb.BlockedAt).UTC(),
	}
	if mb.ExpiresAt != nil {
		t := time.UnixMilli(*mb.ExpiresAt).UTC()
		block.ExpiresAt = &t
	}
	return block
}
