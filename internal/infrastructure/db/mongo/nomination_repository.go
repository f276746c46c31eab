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
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

const collectionNominations = "nominations"

type NominationRepository struct {
	col   *mongo.Collection
	users *mongo.Collection
}

func NewNominationRepository(db *mongo.Database) *NominationRepository {
	return &NominationRepository{
		col:   db.Collection(collectionNominations),
		users: db.Collection(collectionUsers),
	}
}

type mongoNomination struct {
	ID          primitive.ObjectID       `bson:"_id,omitempty"`
	NominatorID string                   `bson:"nominator_id"`
	NomineeID   string                   `bson:"nominee_id"`
	Status      domain.Status            `bson:"status"`
	Selections  []domain.MetricSelection `bson:"selected_metrics"`
	Reason      string                   `bson:"reason"`
	SubmittedAt time.Time                `bson:"submitted_at"`
}

func (mn *mongoNomination) toDomain() *domain.Nomination {
	return &domain.Nomination{
		ID:          mn.ID.Hex(),
		NominatorID: mn.NominatorID,
		NomineeID:   mn.NomineeID,
		Status:      mn.Status,
		Selections:  mn.Selections,
		Reason:      mn.Reason,
		SubmittedAt: mn.SubmittedAt,
	}
}

func (r *NominationRepository) Create(ctx context.Context, n *domain.Nomination) (*domain.Nomination, error) {
	res, err := r.col.InsertOne(ctx, mongoNomination{
		NominatorID: n.NominatorID,
		NomineeID:   n.NomineeID,
		Status:      n.Status,
		Selections:  n.Selections,
		Reason:      n.Reason,
		SubmittedAt: n.SubmittedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert nomination: %w", err)
	}

	created := *n
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NominationRepository) FindByID(ctx context.Context, id string) (*domain.Nomination, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNominationNotFound
	}

	var mn mongoNomination
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNominationNotFound
		}
		return nil, fmt.Errorf("find nomination: %w", err)
	}

	nom := mn.toDomain()
	if err := r.attachUsers(ctx, []*domain.Nomination{nom}); err != nil {
		return nil, err
	}
	return nom, nil
}

func (r *NominationRepository) FindActiveByNominator(ctx context.Context, nominatorID string) (*domain.Nomination, error) {
	filter := bson.M{
		"nominator_id": nominatorID,
		"status":       bson.M{"$in": domain.ActiveStatuses()},
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	var mn mongoNomination
	if err := r.col.FindOne(ctx, filter, opts).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNominationNotFound
		}
		return nil, fmt.Errorf("find active nomination: %w", err)
	}

	nom := mn.toDomain()
	if err := r.attachUsers(ctx, []*domain.Nomination{nom}); err != nil {
		return nil, err
	}
	return nom, nil
}

func (r *NominationRepository) Update(ctx context.Context, n *domain.Nomination) error {
	oid, err := primitive.ObjectIDFromHex(n.ID)
	if err != nil {
		return domain.ErrNominationNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"nominee_id":       n.NomineeID,
		"selected_metrics": n.Selections,
		"reason":           n.Reason,
		"status":           n.Status,
	}})
	if err != nil {
		return fmt.Errorf("update nomination: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNominationNotFound
	}
	return nil
}

func (r *NominationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNominationNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete nomination: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNominationNotFound
	}
	return nil
}

func (r *NominationRepository) ListByStatus(ctx context.Context, statuses []domain.Status) ([]*domain.Nomination, error) {
	return r.list(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

func (r *NominationRepository) ListExcludingStatus(ctx context.Context, statuses []domain.Status) ([]*domain.Nomination, error) {
	return r.list(ctx, bson.M{"status": bson.M{"$nin": statuses}})
}

func (r *NominationRepository) ListAll(ctx context.Context) ([]*domain.Nomination, error) {
	return r.list(ctx, bson.M{})
}

func (r *NominationRepository) ListByNominee(ctx context.Context, nomineeID string) ([]*domain.Nomination, error) {
	return r.list(ctx, bson.M{"nominee_id": nomineeID})
}

// list runs the filter ordered by submission time descending and attaches
// the nominator/nominee snapshots.
func (r *NominationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Nomination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list nominations: %w", err)
	}
	defer cur.Close(ctx)

	var noms []*domain.Nomination
	for cur.Next(ctx) {
		var mn mongoNomination
		if err := cur.Decode(&mn); err != nil {
			return nil, err
		}
		noms = append(noms, mn.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	if err := r.attachUsers(ctx, noms); err != nil {
		return nil, err
	}
	return noms, nil
}

// attachUsers batch-loads the nominator and nominee records for the given
// nominations in one query.
func (r *NominationRepository) attachUsers(ctx context.Context, noms []*domain.Nomination) error {
	if len(noms) == 0 {
		return nil
	}

	idSet := make(map[string]struct{}, len(noms)*2)
	var oids []primitive.ObjectID
	for _, n := range noms {
		for _, id := range []string{n.NominatorID, n.NomineeID} {
			if _, ok := idSet[id]; ok {
				continue
			}
			idSet[id] = struct{}{}
			if oid, err := primitive.ObjectIDFromHex(id); err == nil {
				oids = append(oids, oid)
			}
		}
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return fmt.Errorf("load nomination users: %w", err)
	}
	defer cur.Close(ctx)

	byID := make(map[string]*domain.User, len(oids))
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return err
		}
		byID[mu.ID.Hex()] = mu.toDomain()
	}
	if err := cur.Err(); err != nil {
		return err
	}

	for _, n := range noms {
		n.Nominator = byID[n.NominatorID]
		n.Nominee = byID[n.NomineeID]
	}
	return nil
}

// UpdateStatusByNominee moves every nomination for the nominee to status in
// one statement.
func (r *NominationRepository) UpdateStatusByNominee(ctx context.Context, nomineeID string, status domain.Status) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"nominee_id": nomineeID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return 0, fmt.Errorf("bulk status update: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *NominationRepository) CountDistinctFinalists(ctx context.Context) (int64, error) {
	return r.countDistinct(ctx, "nominee_id", bson.M{"status": domain.StatusCommitteeApproved})
}

func (r *NominationRepository) CountDistinctNominators(ctx context.Context) (int64, error) {
	return r.countDistinct(ctx, "nominator_id", bson.M{})
}

func (r *NominationRepository) CountDistinctNomineesByStatus(ctx context.Context, statuses []domain.Status) (int64, error) {
	return r.countDistinct(ctx, "nominee_id", bson.M{"status": bson.M{"$in": statuses}})
}

func (r *NominationRepository) countDistinct(ctx context.Context, field string, filter bson.M) (int64, error) {
	values, err := r.col.Distinct(ctx, field, filter)
	if err != nil {
		return 0, fmt.Errorf("distinct %s: %w", field, err)
	}
	return int64(len(values)), nil
}

func (r *NominationRepository) CountAll(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *NominationRepository) CountByStatus(ctx context.Context, statuses []domain.Status) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

func (r *NominationRepository) CountReceived(ctx context.Context, nomineeID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"nominee_id": nomineeID})
}

// DepartmentCounts groups nominations by the nominee's practice.
func (r *NominationRepository) DepartmentCounts(ctx context.Context) ([]ports.DepartmentCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{"nominee_oid": bson.M{"$toObjectId": "$nominee_id"}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "nominee_oid",
			"foreignField": "_id",
			"as":           "nominee",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$nominee", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$nominee.practice", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("department counts: %w", err)
	}
	defer cur.Close(ctx)

	var out []ports.DepartmentCount
	for cur.Next(ctx) {
		var row struct {
			Department string `bson:"_id"`
			Count      int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.Department == "" {
			row.Department = "Unknown"
		}
		out = append(out, ports.DepartmentCount{Department: row.Department, Count: row.Count})
	}
	return out, cur.Err()
}

func (r *NominationRepository) DailyTrend(ctx context.Context) ([]ports.TrendPoint, error) {
	return r.trend(ctx, "%Y-%m-%d")
}

func (r *NominationRepository) MonthlyTrend(ctx context.Context) ([]ports.TrendPoint, error) {
	return r.trend(ctx, "%Y-%m")
}

func (r *NominationRepository) trend(ctx context.Context, format string) ([]ports.TrendPoint, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": format, "date": "$submitted_at"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("trend aggregation: %w", err)
	}
	defer cur.Close(ctx)

	var out []ports.TrendPoint
	for cur.Next(ctx) {
		var row struct {
			Bucket string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, ports.TrendPoint{Bucket: row.Bucket, Count: row.Count})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the lookup indexes for nominations.
func (r *NominationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "nominator_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "nominee_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "submitted_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
