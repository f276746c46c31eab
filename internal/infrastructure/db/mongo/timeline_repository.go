package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

const collectionTimelines = "timelines"

type TimelineRepository struct {
	col *mongo.Collection
}

func NewTimelineRepository(db *mongo.Database) *TimelineRepository {
	return &TimelineRepository{col: db.Collection(collectionTimelines)}
}

type mongoTimeline struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	IsActive         bool               `bson:"is_active"`
	NominationStart  time.Time          `bson:"nomination_start"`
	NominationEnd    time.Time          `bson:"nomination_end"`
	CoordinatorStart time.Time          `bson:"coordinator_start"`
	CoordinatorEnd   time.Time          `bson:"coordinator_end"`
	CommitteeStart   time.Time          `bson:"committee_start"`
	CommitteeEnd     time.Time          `bson:"committee_end"`
	VotingStart      time.Time          `bson:"voting_start"`
	VotingEnd        time.Time          `bson:"voting_end"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func toMongoTimeline(t *domain.Timeline) mongoTimeline {
	return mongoTimeline{
		Name:             t.Name,
		IsActive:         t.IsActive,
		NominationStart:  t.NominationStart,
		NominationEnd:    t.NominationEnd,
		CoordinatorStart: t.CoordinatorStart,
		CoordinatorEnd:   t.CoordinatorEnd,
		CommitteeStart:   t.CommitteeStart,
		CommitteeEnd:     t.CommitteeEnd,
		VotingStart:      t.VotingStart,
		VotingEnd:        t.VotingEnd,
		CreatedAt:        t.CreatedAt,
	}
}

func (mt *mongoTimeline) toDomain() *domain.Timeline {
	return &domain.Timeline{
		ID:               mt.ID.Hex(),
		Name:             mt.Name,
		IsActive:         mt.IsActive,
		NominationStart:  mt.NominationStart,
		NominationEnd:    mt.NominationEnd,
		CoordinatorStart: mt.CoordinatorStart,
		CoordinatorEnd:   mt.CoordinatorEnd,
		CommitteeStart:   mt.CommitteeStart,
		CommitteeEnd:     mt.CommitteeEnd,
		VotingStart:      mt.VotingStart,
		VotingEnd:        mt.VotingEnd,
		CreatedAt:        mt.CreatedAt,
	}
}

// Create stores the timeline. An active timeline deactivates every other one
// so at most one is ever in force.
func (r *TimelineRepository) Create(ctx context.Context, t *domain.Timeline) (*domain.Timeline, error) {
	if t.IsActive {
		if err := r.deactivateAll(ctx); err != nil {
			return nil, err
		}
	}

	doc := toMongoTimeline(t)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert timeline: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = doc.CreatedAt
	return &created, nil
}

func (r *TimelineRepository) Update(ctx context.Context, t *domain.Timeline) error {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return domain.ErrTimelineNotFound
	}

	if t.IsActive {
		if err := r.deactivateAll(ctx); err != nil {
			return err
		}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":              t.Name,
		"is_active":         t.IsActive,
		"nomination_start":  t.NominationStart,
		"nomination_end":    t.NominationEnd,
		"coordinator_start": t.CoordinatorStart,
		"coordinator_end":   t.CoordinatorEnd,
		"committee_start":   t.CommitteeStart,
		"committee_end":     t.CommitteeEnd,
		"voting_start":      t.VotingStart,
		"voting_end":        t.VotingEnd,
	}})
	if err != nil {
		return fmt.Errorf("update timeline: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTimelineNotFound
	}
	return nil
}

func (r *TimelineRepository) List(ctx context.Context) ([]*domain.Timeline, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list timelines: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Timeline
	for cur.Next(ctx) {
		var mt mongoTimeline
		if err := cur.Decode(&mt); err != nil {
			return nil, err
		}
		out = append(out, mt.toDomain())
	}
	return out, cur.Err()
}

// FindActive returns the active timeline, or nil when no cycle is in force.
func (r *TimelineRepository) FindActive(ctx context.Context) (*domain.Timeline, error) {
	var mt mongoTimeline
	err := r.col.FindOne(ctx, bson.M{"is_active": true}).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active timeline: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TimelineRepository) deactivateAll(ctx context.Context) error {
	_, err := r.col.UpdateMany(ctx,
		bson.M{"is_active": true},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		return fmt.Errorf("deactivate timelines: %w", err)
	}
	return nil
}
