package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// kindCollections maps each ledger kind to its backing collection. Keeping
// the three ledgers in separate collections mirrors how the data is listed:
// always per project, per kind, never mixed.
var kindCollections = map[domain.LedgerKind]string{
	domain.KindHumanResource: "labor_lines",
	domain.KindMaterial:      "material_lines",
	domain.KindActionPlan:    "action_plan_lines",
}

type LedgerRepository struct {
	db *mongo.Database
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) collection(kind domain.LedgerKind) *mongo.Collection {
	name, ok := kindCollections[kind]
	if !ok {
		// Unknown kinds never reach here through the services; a stray
		// collection name would silently shadow real data.
		name = "unknown_lines"
	}
	return r.db.Collection(name)
}

func (r *LedgerRepository) Insert(ctx context.Context, line *domain.LedgerLine) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.collection(line.Kind).InsertOne(ctx, line)
	return err
}

func (r *LedgerRepository) FindByID(ctx context.Context, kind domain.LedgerKind, id string) (*domain.LedgerLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var line domain.LedgerLine
	err := r.collection(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&line)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLineNotFound
		}
		return nil, err
	}
	return &line, nil
}

func (r *LedgerRepository) ListByProject(ctx context.Context, kind domain.LedgerKind, projectID string) ([]domain.LedgerLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.collection(kind).Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.LedgerLine
	for cur.Next(ctx) {
		var line domain.LedgerLine
		if err := cur.Decode(&line); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, cur.Err()
}

func (r *LedgerRepository) Update(ctx context.Context, line *domain.LedgerLine) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"activity":    line.Activity,
			"sub_action":  line.SubAction,
			"responsible": line.Responsible,
			"time":        line.Time,
			"quantity":    line.Quantity,
			"hours":       line.Hours,
			"unit_cost":   line.UnitCost,
			"amount":      line.Amount,
			"updated_at":  line.UpdatedAt.UTC(),
		},
	}
	res, err := r.collection(line.Kind).UpdateOne(ctx, bson.M{"_id": line.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrLineNotFound
	}
	return nil
}

func (r *LedgerRepository) Delete(ctx context.Context, kind domain.LedgerKind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrLineNotFound
	}
	return nil
}

// EnsureIndexes creates the project_id index on every ledger collection.
func (r *LedgerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, name := range kindCollections {
		_, err := r.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "project_id", Value: 1}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
