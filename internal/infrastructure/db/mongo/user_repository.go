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

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	FirstName    string             `bson:"first_name,omitempty"`
	LastName     string             `bson:"last_name,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	EmployeeID   string             `bson:"employee_id,omitempty"`
	Practice     string             `bson:"practice,omitempty"`
	Portfolio    string             `bson:"portfolio,omitempty"`
	Location     string             `bson:"location,omitempty"`
	Country      string             `bson:"country,omitempty"`
	ContractType string             `bson:"contract_type,omitempty"`
	LineManager  string             `bson:"line_manager,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		EmployeeID:   u.EmployeeID,
		Practice:     u.Practice,
		Portfolio:    u.Portfolio,
		Location:     u.Location,
		Country:      u.Country,
		ContractType: u.ContractType,
		LineManager:  u.LineManager,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		EmployeeID:   mu.EmployeeID,
		Practice:     mu.Practice,
		Portfolio:    mu.Portfolio,
		Location:     mu.Location,
		Country:      mu.Country,
		ContractType: mu.ContractType,
		LineManager:  mu.LineManager,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoUser(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *u
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	doc := toMongoUser(u)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpsertByEmail creates or updates a user keyed by email. Email, role and
// password hash are written on insert only; existing accounts keep theirs.
func (r *UserRepository) UpsertByEmail(ctx context.Context, u *domain.User) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"username":      u.Username,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"practice":      u.Practice,
		"portfolio":     u.Portfolio,
		"location":      u.Location,
		"country":       u.Country,
		"contract_type": u.ContractType,
		"line_manager":  u.LineManager,
		"updated_at":    u.UpdatedAt,
	}
	if u.EmployeeID != "" {
		set["employee_id"] = u.EmployeeID
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"email":         u.Email,
			"role":          u.Role,
			"password_hash": u.PasswordHash,
			"created_at":    u.UpdatedAt,
		},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"email": u.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.ExcludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(f.ExcludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}
	if len(f.ExcludeRoles) > 0 {
		filter["role"] = bson.M{"$nin": f.ExcludeRoles}
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexQuote(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"username": pattern},
			bson.M{"employee_id": pattern},
		}
	}
	if f.Practice != "" {
		filter["practice"] = caseInsensitiveEq(f.Practice)
	}
	if f.Portfolio != "" {
		filter["portfolio"] = caseInsensitiveEq(f.Portfolio)
	}
	if f.Location != "" {
		filter["location"] = caseInsensitiveEq(f.Location)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit)).SetSkip(int64((f.Page - 1) * f.Limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, 0, err
		}
		users = append(users, mu.toDomain())
	}
	return users, total, cur.Err()
}

func (r *UserRepository) FilterOptions(ctx context.Context) (*ports.FilterOptions, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"role": bson.M{"$ne": domain.RoleAdmin}}

	opts := &ports.FilterOptions{}
	for _, field := range []struct {
		name string
		dst  *[]string
	}{
		{"practice", &opts.Practices},
		{"portfolio", &opts.Portfolios},
		{"location", &opts.Locations},
	} {
		values, err := r.col.Distinct(ctx, field.name, filter)
		if err != nil {
			return nil, fmt.Errorf("distinct %s: %w", field.name, err)
		}
		for _, v := range values {
			if s, ok := v.(string); ok && s != "" {
				*field.dst = append(*field.dst, s)
			}
		}
	}
	return opts, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"role": role})
}

// EnsureIndexes creates the uniqueness and lookup indexes for users.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "employee_id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func caseInsensitiveEq(v string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexQuote(v) + "$", Options: "i"}
}

// regexQuote escapes regex metacharacters in user-supplied filter values.
func regexQuote(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		for j := 0; j < len(meta); j++ {
			if c == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, c)
	}
	return string(out)
}
