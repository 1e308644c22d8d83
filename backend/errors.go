package backend

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// duplicateKeyCode is the server code for unique index violations.
const duplicateKeyCode = 11000

// ValidationError reports a request that decoded fine but is missing an
// operation-required field. Handlers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func missingField(name string) error {
	return &ValidationError{Msg: "missing required field: " + name}
}

// DuplicateKeyError is a unique-constraint violation reported by the
// server. Handlers map it to 409.
type DuplicateKeyError struct {
	Code    int32
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key (code %d): %s", e.Code, e.Message)
}

// OperationError is any other backend failure, carrying the server's
// diagnostic for passthrough. Handlers map it to 500.
type OperationError struct {
	Code    int32
	Name    string
	Message string
}

func (e *OperationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s (code %d): %s", e.Name, e.Code, e.Message)
	}
	return e.Message
}

// translate converts a driver error into the proxy taxonomy. Duplicate
// keys become *DuplicateKeyError; everything else keeps its code/name/
// message inside an *OperationError. nil passes through.
func translate(err error) error {
	if err == nil {
		return nil
	}
	code, name, msg := diagnostics(err)
	if mongo.IsDuplicateKeyError(err) {
		if code == 0 {
			code = duplicateKeyCode
		}
		return &DuplicateKeyError{Code: code, Message: msg}
	}
	return &OperationError{Code: code, Name: name, Message: msg}
}

// diagnostics digs the numeric code and name/message pair out of the
// driver's error shapes.
func diagnostics(err error) (code int32, name, msg string) {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code, ce.Name, ce.Message
	}
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 {
		w := we.WriteErrors[0]
		return int32(w.Code), "WriteError", w.Message
	}
	var be mongo.BulkWriteException
	if errors.As(err, &be) && len(be.WriteErrors) > 0 {
		w := be.WriteErrors[0]
		return int32(w.Code), "BulkWriteError", w.Message
	}
	return 0, "MongoError", err.Error()
}
