package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"kpiawards/internal/model"
)

func (s *Store) teachers() *mongo.Collection {
	return s.db.Collection(CollectionTeachers)
}

// Find returns the records matching filter; an empty filter returns all of them
func (s *Store) Find(ctx context.Context, filter model.Filter) ([]model.AwardRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.teachers().Find(ctx, filterDocument(filter))
	if err != nil {
		return nil, fmt.Errorf("%w: find teachers: %w", model.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	out := []model.AwardRecord{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode teachers: %w", model.ErrStorage, err)
	}
	return out, nil
}

// InsertOne stores a record unless the teacher already has an award for one of its years
func (s *Store) InsertOne(ctx context.Context, rec model.AwardRecord) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var existing bson.M
	err := s.teachers().FindOne(ctx, duplicateDocument(rec)).Decode(&existing)
	switch {
	case err == nil:
		return model.ErrDuplicateAward
	case !errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: duplicate check: %w", model.ErrStorage, err)
	}

	if _, err := s.teachers().InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("%w: insert teacher: %w", model.ErrStorage, err)
	}
	return nil
}

// ReplaceAll drops the collection and inserts recs.
// Not transactional: a failed insert leaves the collection empty.
func (s *Store) ReplaceAll(ctx context.Context, recs []model.AwardRecord) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.teachers().Drop(ctx); err != nil {
		return fmt.Errorf("%w: drop teachers: %w", model.ErrStorage, err)
	}
	if len(recs) == 0 {
		return nil
	}
	if _, err := s.teachers().InsertMany(ctx, recordDocuments(recs)); err != nil {
		s.log.Error("bulk insert failed after drop", zap.Int("records", len(recs)), zap.Error(err))
		return fmt.Errorf("%w: insert teachers: %w", model.ErrStorage, err)
	}
	return nil
}

// Count number of stored records
func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.teachers().CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%w: count teachers: %w", model.ErrStorage, err)
	}
	return n, nil
}
