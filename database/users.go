package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"coastwatch/models"
)

const tokenTTL = 30 * 24 * time.Hour

// UserService handles account registration, authentication and the
// admin user-management operations.
type UserService struct {
	db        *mongo.Database
	jwtSecret []byte
}

// NewUserService creates a new user service instance
func NewUserService(db *mongo.Database, jwtSecret string) *UserService {
	return &UserService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *UserService) col() *mongo.Collection {
	return s.db.Collection(ColUsers)
}

// Register creates a new user. The email must be unused; the default
// role is citizen.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleCitizen
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hash),
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.col().InsertOne(ctx, user)
	if err != nil {
		// the unique index on email is the source of truth for duplicates
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// Authenticate checks email/password and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.col().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("invalid email or password")
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return &user, nil
}

// GetByID retrieves a user by its hex id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// List returns all users, newest first. Password hashes stay internal
// via the model's json tag.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	cur, err := s.col().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]*models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Update applies the provided profile fields to a user.
func (s *UserService) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if len(set) > 0 {
		res, err := s.col().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrDuplicateEmail
			}
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetByID(ctx, id)
}

// ToggleActive flips a user's active flag and returns the updated user.
func (s *UserService) ToggleActive(ctx context.Context, id string) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = s.col().UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"isActive": !user.IsActive}})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle user status: %w", err)
	}
	user.IsActive = !user.IsActive
	return user, nil
}

// GenerateToken issues a signed bearer token for a user id.
func (s *UserService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(tokenTTL).Unix(),
		"iat":     now.Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

// ResolveToken validates a bearer token and loads the user behind it.
func (s *UserService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid user id in token")
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}
