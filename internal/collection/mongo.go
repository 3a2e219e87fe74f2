package collection

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// envelope adds the owner to the record's own fields. The driver assigns an
// ObjectID _id on insert; sorting by it yields insertion order.
type envelope[T Record] struct {
	Owner  string `bson:"owner"`
	Record T      `bson:",inline"`
}

// Mongo is a Store backed by one MongoDB collection.
type Mongo[T Record] struct {
	col *mongo.Collection
}

// NewMongo ensures the (owner, id) unique index.
func NewMongo[T Record](ctx context.Context, col *mongo.Collection) (*Mongo[T], error) {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, err
	}
	return &Mongo[T]{col: col}, nil
}

func byID(owner, id string) bson.M { return bson.M{"owner": owner, "id": id} }

func (m *Mongo[T]) Insert(ctx context.Context, owner string, rec T) error {
	_, err := m.col.InsertOne(ctx, envelope[T]{Owner: owner, Record: rec})
	return err
}

func (m *Mongo[T]) List(ctx context.Context, owner string) ([]T, error) {
	cur, err := m.col.Find(ctx, bson.M{"owner": owner}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []T{}
	for cur.Next(ctx) {
		var e envelope[T]
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e.Record)
	}
	return out, cur.Err()
}

func (m *Mongo[T]) Get(ctx context.Context, owner, id string) (T, error) {
	var e envelope[T]
	if err := m.col.FindOne(ctx, byID(owner, id)).Decode(&e); err != nil {
		var zero T
		if err == mongo.ErrNoDocuments {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return e.Record, nil
}

func (m *Mongo[T]) Replace(ctx context.Context, owner string, rec T) error {
	res, err := m.col.ReplaceOne(ctx, byID(owner, rec.RecordID()), envelope[T]{Owner: owner, Record: rec})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo[T]) Delete(ctx context.Context, owner, id string) error {
	res, err := m.col.DeleteOne(ctx, byID(owner, id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
