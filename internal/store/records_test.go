package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"kpiawards/internal/model"
)

// newUnreachableStore a store whose server never answers; no connection is made up front
func newUnreachableStore(t *testing.T) *Store {
	t.Helper()

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return &Store{
		client:  client,
		db:      client.Database("awards_test"),
		timeout: 100 * time.Millisecond,
		log:     zap.NewNop(),
	}
}

// causes returns the errors wrapped next to ErrStorage
func causes(t *testing.T, err error) []error {
	t.Helper()
	multi, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "error %v does not wrap its cause", err)
	return multi.Unwrap()
}

func TestStorageErrorsKeepDriverCause(t *testing.T) {
	s := newUnreachableStore(t)
	ctx := context.Background()

	_, findErr := s.Find(ctx, nil)
	_, _, nextErr := s.Next(ctx, model.KindKPIAward, "Подяка")
	insertErr := s.InsertOne(ctx, model.AwardRecord{Teacher: "A", Fac: "F1", Gram: "Best", Year: "2020"})

	for name, err := range map[string]error{"find": findErr, "next": nextErr, "insert": insertErr} {
		t.Run(name, func(t *testing.T) {
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrStorage)

			wrapped := causes(t, err)
			require.Len(t, wrapped, 2)
			assert.NotNil(t, wrapped[1])
			assert.False(t, errors.Is(wrapped[1], model.ErrStorage))
		})
	}
}
