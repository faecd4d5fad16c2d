package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

var (
	// ErrNotFound is returned by every repository when the requested row or document does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// PostgresRepo implements UserRepo, RoomRepo and BookingRepo on top of sqlx.
type PostgresRepo struct {
	db *sqlx.DB
}

func PostgresNewRepo(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// MongodbRepo implements ReviewsRepo.
type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

// RedisRepo implements SessionRepo.
type RedisRepo struct {
	client *redis.Client
}

func RedisNewRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{client: client}
}
