package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agroplan/backoffice/internal/core/domain"
)

const collectionAudit = "audit_events"

// AuditRepository persists the append-only audit trail.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

// Record appends one event. Events are never updated or deleted.
func (r *AuditRepository) Record(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"timestamp":   event.Timestamp.UTC(),
		"actor":       event.Actor,
		"action":      string(event.Action),
		"entity_kind": event.EntityKind,
		"entity_id":   event.EntityID,
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// List returns the most recent events, newest first.
func (r *AuditRepository) List(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.AuditEvent
	for cur.Next(ctx) {
		var doc struct {
			Timestamp  time.Time `bson:"timestamp"`
			Actor      string    `bson:"actor"`
			Action     string    `bson:"action"`
			EntityKind string    `bson:"entity_kind"`
			EntityID   string    `bson:"entity_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domain.AuditEvent{
			Timestamp:  doc.Timestamp,
			Actor:      doc.Actor,
			Action:     domain.Action(doc.Action),
			EntityKind: doc.EntityKind,
			EntityID:   doc.EntityID,
		})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the timestamp index backing List's sort.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	return err
}
