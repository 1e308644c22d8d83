package backend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// A unique-index violation must come out as *DuplicateKeyError with the
// server's code and message, not a generic operation error.
func TestTranslate_DuplicateKey(t *testing.T) {
	t.Parallel()

	src := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: appdb.users index: email_1",
	}}}

	err := translate(src)
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	require.EqualValues(t, 11000, dup.Code)
	require.Contains(t, dup.Message, "E11000")
}

// Command errors keep their code/name/message for diagnostic passthrough.
func TestTranslate_CommandError(t *testing.T) {
	t.Parallel()

	src := mongo.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized on appdb"}

	err := translate(src)
	var oe *OperationError
	require.ErrorAs(t, err, &oe)
	require.EqualValues(t, 13, oe.Code)
	require.Equal(t, "Unauthorized", oe.Name)
	require.Equal(t, "not authorized on appdb", oe.Message)
}

// Non-duplicate write errors stay operation errors.
func TestTranslate_WriteError(t *testing.T) {
	t.Parallel()

	src := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    121,
		Message: "Document failed validation",
	}}}

	err := translate(src)
	var oe *OperationError
	require.ErrorAs(t, err, &oe)
	require.EqualValues(t, 121, oe.Code)
	require.Equal(t, "WriteError", oe.Name)
}

// Errors with no driver shape still pass their message through.
func TestTranslate_Opaque(t *testing.T) {
	t.Parallel()

	err := translate(errors.New("socket was unexpectedly closed"))
	var oe *OperationError
	require.ErrorAs(t, err, &oe)
	require.EqualValues(t, 0, oe.Code)
	require.Equal(t, "MongoError", oe.Name)
	require.Contains(t, oe.Message, "socket")
}

func TestTranslate_Nil(t *testing.T) {
	t.Parallel()
	require.NoError(t, translate(nil))
}
