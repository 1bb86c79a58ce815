package database

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"content-tracker-report/internal/config"
	"content-tracker-report/internal/models"
	"content-tracker-report/internal/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client sources accepted by LoadClients
const (
	SourcePrimary      = "primary"
	SourceStrategy     = "strategy"
	SourceStrategyHead = "strategy-head"
)

// MongoDBClient wraps the MongoDB connection to the external content store.
// Tasks, three client collections, and employees live here; the snapshot
// service re-reads them wholesale and transitions write single records back.
type MongoDBClient struct {
	client       *mongo.Client
	database     *mongo.Database
	tasks        *mongo.Collection
	clients      *mongo.Collection
	strategy     *mongo.Collection
	strategyHead *mongo.Collection
	employees    *mongo.Collection
	validator    *validation.TaskValidator
}

// NewMongoDBClient connects to MongoDB and resolves all collections
func NewMongoDBClient(cfg config.MongoDBConfig, validator *validation.TaskValidator) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Build connection URI
	uri := cfg.URI
	if uri == "" {
		if cfg.Username != "" && cfg.Password != "" {
			userInfo := url.UserPassword(cfg.Username, cfg.Password)
			uri = fmt.Sprintf("mongodb://%s@%s:%s/%s?authSource=%s",
				userInfo.String(), cfg.Host, cfg.Port, cfg.Database,
				url.QueryEscape(cfg.AuthSource))
		} else {
			uri = fmt.Sprintf("mongodb://%s:%s/%s", cfg.Host, cfg.Port, cfg.Database)
		}
	}

	// Mask the password when logging the connection target
	logURI := uri
	if cfg.Password != "" && cfg.Username != "" {
		logURI = fmt.Sprintf("mongodb://%s:***@%s:%s/%s", cfg.Username, cfg.Host, cfg.Port, cfg.Database)
	}
	log.Printf("Connecting to MongoDB at %s", logURI)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(cfg.Database)
	return &MongoDBClient{
		client:       client,
		database:     database,
		tasks:        database.Collection(cfg.TasksCollection),
		clients:      database.Collection(cfg.ClientsCollection),
		strategy:     database.Collection(cfg.StrategyCollection),
		strategyHead: database.Collection(cfg.StrategyHeadCollection),
		employees:    database.Collection(cfg.EmployeesCollection),
		validator:    validator,
	}, nil
}

// Close closes the MongoDB client connection
func (c *MongoDBClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// LoadTasks reads the full task collection for a snapshot refresh. Documents
// failing schema validation are skipped with a warning rather than poisoning
// the snapshot.
func (c *MongoDBClient) LoadTasks(ctx context.Context) (map[string]models.Task, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := c.tasks.Find(opCtx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer cursor.Close(opCtx)

	var docs []bson.M
	if err := cursor.All(opCtx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make(map[string]models.Task, len(docs))
	for _, doc := range docs {
		task, err := c.validator.ParseTask(doc)
		if err != nil {
			log.Printf("WARNING: Skipping task %v: %v", doc["_id"], err)
			continue
		}
		tasks[task.ID] = task
	}
	return tasks, nil
}

// LoadClients reads one of the three client collections wholesale
func (c *MongoDBClient) LoadClients(ctx context.Context, source string) ([]models.Client, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var collection *mongo.Collection
	switch source {
	case SourcePrimary:
		collection = c.clients
	case SourceStrategy:
		collection = c.strategy
	case SourceStrategyHead:
		collection = c.strategyHead
	default:
		return nil, fmt.Errorf("unknown client source: %q", source)
	}

	cursor, err := collection.Find(opCtx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s clients: %w", source, err)
	}
	defer cursor.Close(opCtx)

	var clients []models.Client
	if err := cursor.All(opCtx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode %s clients: %w", source, err)
	}
	return clients, nil
}

// LoadEmployees reads the employee collection wholesale
func (c *MongoDBClient) LoadEmployees(ctx context.Context) ([]models.Employee, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := c.employees.Find(opCtx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer cursor.Close(opCtx)

	var employees []models.Employee
	if err := cursor.All(opCtx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return employees, nil
}

// UpdateTask applies a partial update to a single task document. Fields in
// sets are written with $set, fields in incs with $inc. Last write wins;
// there is no cross-task locking.
func (c *MongoDBClient) UpdateTask(ctx context.Context, taskID string, sets bson.M, incs bson.M) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{}
	if len(sets) > 0 {
		update["$set"] = sets
	}
	if len(incs) > 0 {
		update["$inc"] = incs
	}
	if len(update) == 0 {
		return nil
	}

	result, err := c.tasks.UpdateOne(opCtx, bson.M{"_id": taskID}, update)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	if result.MatchedCount == 0 {
		return &models.NotFoundError{TaskID: taskID}
	}
	return nil
}

// InsertTask creates a single new task document
func (c *MongoDBClient) InsertTask(ctx context.Context, task models.Task) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := c.tasks.InsertOne(opCtx, task); err != nil {
		return fmt.Errorf("failed to insert task %s: %w", task.ID, err)
	}
	return nil
}
