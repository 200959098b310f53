package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/ledger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotCollection = "valuation_snapshots"

// SnapshotItem stores amounts as decimal strings so no precision is lost.
type SnapshotItem struct {
	ItemCode     string `bson:"item_code" json:"item_code"`
	ItemName     string `bson:"item_name" json:"item_name"`
	CurrentStock string `bson:"current_stock" json:"current_stock"`
	Unit         string `bson:"unit" json:"unit"`
	LastRate     string `bson:"last_rate" json:"last_rate"`
	TotalValue   string `bson:"total_value" json:"total_value"`
	Status       string `bson:"status" json:"status"`
}

// Snapshot is the stock ledger as it stood at TakenAt.
type Snapshot struct {
	TakenAt       time.Time      `bson:"taken_at" json:"taken_at"`
	ItemCount     int            `bson:"item_count" json:"item_count"`
	LowStockCount int            `bson:"low_stock_count" json:"low_stock_count"`
	TotalValue    string         `bson:"total_value" json:"total_value"`
	ArchivedAs    string         `bson:"archived_as,omitempty" json:"archived_as,omitempty"`
	Items         []SnapshotItem `bson:"items" json:"items"`
}

func NewSnapshot(summary ledger.Summary, takenAt time.Time) Snapshot {
	snapshot := Snapshot{
		TakenAt:       takenAt.UTC(),
		ItemCount:     summary.ItemCount,
		LowStockCount: summary.LowStockCount,
		TotalValue:    summary.TotalValue.String(),
		Items:         make([]SnapshotItem, 0, len(summary.Rows)),
	}
	for _, row := range summary.Rows {
		snapshot.Items = append(snapshot.Items, SnapshotItem{
			ItemCode:     row.ItemCode,
			ItemName:     row.ItemName,
			CurrentStock: row.CurrentStock.String(),
			Unit:         row.UnitOfMeasurement,
			LastRate:     row.LastRate.String(),
			TotalValue:   row.TotalValue.String(),
			Status:       string(row.Status),
		})
	}
	return snapshot
}

type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	LatestSnapshots(ctx context.Context, limit int64) ([]Snapshot, error)
}

type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: snapshotCollection,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot Snapshot) error {
	if _, err := r.collection().InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert valuation snapshot: %w", err)
	}
	return nil
}

// LatestSnapshots returns up to limit snapshots, newest first.
func (r *MongoDBRepository) LatestSnapshots(ctx context.Context, limit int64) ([]Snapshot, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "taken_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection().Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := []Snapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode valuation snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *MongoDBRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
