package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

const (
	collectionShipments = "shipments"
	collectionCounters  = "counters"
	shipmentsCounterID  = "shipments"
)

// ShipmentRepository implements ports.ShipmentRepository using MongoDB.
type ShipmentRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{
		col:      db.Collection(collectionShipments),
		counters: db.Collection(collectionCounters),
	}
}

// Create inserts a new shipment document with the next registration sequence.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	if s.TrackingNumber == "" {
		return fmt.Errorf("create shipment: %w: tracking number is required", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq, err := r.nextSeq(ctx)
	if err != nil {
		return fmt.Errorf("create shipment: %w", err)
	}

	doc := toDocument(s)
	doc.Seq = seq
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("create shipment %s: %w", s.TrackingNumber, domain.ErrDuplicateShipment)
		}
		return fmt.Errorf("create shipment: %w", err)
	}
	s.Seq = seq
	return nil
}

// nextSeq atomically increments the shipments counter.
func (r *ShipmentRepository) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": shipmentsCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return counter.Seq, nil
}

// FindByTrackingNumber retrieves a shipment by tracking number.
func (r *ShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	doc, err := r.findOne(ctx, bson.M{"tracking_number": trackingNumber})
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindByIdempotencyKey retrieves an existing shipment that was created with the given key.
func (r *ShipmentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Shipment, error) {
	doc, err := r.findOne(ctx, bson.M{"idempotency_key": key})
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ShipmentRepository) findOne(ctx context.Context, filter bson.M) (*shipmentDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shipmentDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// List returns all shipments ordered by registration sequence.
func (r *ShipmentRepository) List(ctx context.Context) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []shipmentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	out := make([]*domain.Shipment, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the shipments collection.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tracking_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "stage", Value: 1}}},
		{Keys: bson.D{{Key: "idempotency_key", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// Ping reports whether the backing database is reachable.
func (r *ShipmentRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}
