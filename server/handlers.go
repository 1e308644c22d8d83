package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DoubleNemesis/mongo-test/backend"
	"github.com/DoubleNemesis/mongo-test/pool"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleMongo decodes the body, dispatches the named operation and
// translates the error taxonomy into the HTTP contract:
// validation/invalid URI -> 400, duplicate key -> 409, everything the
// backend reports -> 500 with diagnostic passthrough.
func (s *Server) handleMongo(w http.ResponseWriter, r *http.Request) {
	op, ok := backend.ParseOp(chi.URLParam(r, "op"))
	if !ok {
		writeError(w, http.StatusNotFound, errorBody{Error: "unknown operation"})
		return
	}

	var req backend.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body", Message: err.Error()})
		return
	}
	req.Op = op

	res, err := s.run.Run(r.Context(), &req)
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	var ve *backend.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, errorBody{Error: ve.Msg})
		return
	}
	if errors.Is(err, pool.ErrInvalidKey) {
		writeError(w, http.StatusBadRequest, errorBody{Error: "invalid connection string"})
		return
	}

	var dup *backend.DuplicateKeyError
	if errors.As(err, &dup) {
		writeError(w, http.StatusConflict, errorBody{
			Error:   "Duplicate key",
			Code:    dup.Code,
			Message: dup.Message,
		})
		return
	}

	var de *pool.DialError
	if errors.As(err, &de) {
		writeError(w, http.StatusInternalServerError, errorBody{
			Error:   "Connection failed",
			Name:    "ConnectionError",
			Message: de.Err.Error(),
		})
		return
	}

	var oe *backend.OperationError
	if errors.As(err, &oe) {
		writeError(w, http.StatusInternalServerError, errorBody{
			Error:   "Operation failed",
			Code:    oe.Code,
			Name:    oe.Name,
			Message: oe.Message,
		})
		return
	}

	// Closed pool, context cancellation and the like.
	s.log.Error().Err(err).Msg("unhandled run error")
	writeError(w, http.StatusInternalServerError, errorBody{
		Error:   "Internal error",
		Message: err.Error(),
	})
}
