package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

const collectionVotes = "votes"

type VoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{col: db.Collection(collectionVotes)}
}

type mongoVote struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	VoterID      string             `bson:"voter_id"`
	NominationID string             `bson:"nomination_id"`
	VotedAt      time.Time          `bson:"voted_at"`
}

// Create stores the vote. The unique voter index turns a second vote from
// the same user into domain.ErrAlreadyVoted.
func (r *VoteRepository) Create(ctx context.Context, v *domain.Vote) error {
	_, err := r.col.InsertOne(ctx, mongoVote{
		VoterID:      v.VoterID,
		NominationID: v.NominationID,
		VotedAt:      v.VotedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) HasVoted(ctx context.Context, voterID string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"voter_id": voterID})
	if err != nil {
		return false, fmt.Errorf("count votes: %w", err)
	}
	return count > 0, nil
}

// CountByNomination returns vote tallies keyed by nomination id.
func (r *VoteRepository) CountByNomination(ctx context.Context, nominationIDs []string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"nomination_id": bson.M{"$in": nominationIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$nomination_id", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count votes by nomination: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			NominationID string `bson:"_id"`
			Count        int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.NominationID] = row.Count
	}
	return counts, cur.Err()
}

func (r *VoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "voter_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "nomination_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
