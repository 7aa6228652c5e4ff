package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/inumeshi/internal/config"
	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

const calculationCollection = "calculation_logs"

// Repository archives calculation logs.
type Repository interface {
	SaveCalculation(ctx context.Context, record models.CalculationLog) error
}

// MongoDBRepository implements Repository for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects and pings the server before returning.
func NewMongoDBRepository(ctx context.Context, cfg config.MongoDBConfig) (*MongoDBRepository, error) {
	if !cfg.Enabled() {
		return nil, errors.New("mongodb repository: uri is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   cfg.DBName,
		collName: calculationCollection,
	}, nil
}

// SaveCalculation inserts one calculation log document.
func (r *MongoDBRepository) SaveCalculation(ctx context.Context, record models.CalculationLog) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert calculation log %s: %w", record.ID, err)
	}
	return nil
}

// Close disconnects the client.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
