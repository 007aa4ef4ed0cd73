package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"kpiawards/internal/model"
)

func (s *Store) references(kind model.ReferenceKind) *mongo.Collection {
	return s.db.Collection(string(kind))
}

// List returns a reference sequence ordered by id
func (s *Store) List(ctx context.Context, kind model.ReferenceKind) ([]model.ReferenceEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := s.references(kind).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", model.ErrStorage, kind, err)
	}
	defer cursor.Close(ctx)

	out := []model.ReferenceEntry{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", model.ErrStorage, kind, err)
	}
	return out, nil
}

// Next returns the name of the entry whose id follows the one named name.
// ok is false when either entry is missing.
func (s *Store) Next(ctx context.Context, kind model.ReferenceKind, name string) (string, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	coll := s.references(kind)

	var current model.ReferenceEntry
	err := coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&current)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: lookup %s %q: %w", model.ErrStorage, kind, name, err)
	}

	var next model.ReferenceEntry
	err = coll.FindOne(ctx, bson.D{{Key: "id", Value: current.ID + 1}}).Decode(&next)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: lookup %s id %d: %w", model.ErrStorage, kind, current.ID+1, err)
	}
	return next.Name, true, nil
}

// Exists reports whether name is in the reference sequence.
// Lookup failures are logged and reported as not found.
func (s *Store) Exists(ctx context.Context, kind model.ReferenceKind, name string) bool {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.references(kind).CountDocuments(ctx, bson.D{{Key: "name", Value: name}}, options.Count().SetLimit(1))
	if err != nil {
		s.log.Warn("reference lookup failed", zap.String("kind", string(kind)), zap.String("name", name), zap.Error(err))
		return false
	}
	return n > 0
}
