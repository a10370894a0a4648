package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNumberToInt64(t *testing.T) {
	for _, v := range []any{int32(42), int64(42), float64(42.9)} {
		n, err := numberToInt64(v)
		require.NoError(t, err)
		assert.Equal(t, int64(42), n)
	}

	n, err := numberToInt64(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = numberToInt64("42")
	assert.Error(t, err)
}

func TestObjectIDRejectsMalformed(t *testing.T) {
	_, err := objectID("nope")
	assert.Error(t, err)

	oid, err := objectID("65f1c0ffee0000000000beef")
	require.NoError(t, err)
	assert.Equal(t, "65f1c0ffee0000000000beef", oid.Hex())
}

func TestUsageUserKeyMatchesObjectIDRecords(t *testing.T) {
	hex := "65f1c0ffee0000000000beef"
	oid, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)

	assert.Equal(t, oid, usageUserKey(hex))
	assert.Equal(t, bson.M{"userId": bson.M{"$in": bson.A{oid, hex}}}, usageUserFilter(hex))

	assert.Equal(t, "user-1", usageUserKey("user-1"))
	assert.Equal(t, bson.M{"userId": "user-1"}, usageUserFilter("user-1"))
}

func TestUsageDocumentDecodesEitherUserIDType(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), usageDocument{UserID: oid}.toDomain().UserID)
	assert.Equal(t, "user-1", usageDocument{UserID: "user-1"}.toDomain().UserID)
	assert.Empty(t, usageDocument{}.toDomain().UserID)
}
