package httphandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

// maxBodyBytes bounds request bodies; records are a few hundred bytes.
const maxBodyBytes = 1 << 20

// Resource describes one REST collection backed by a single table.
type Resource[T any] struct {
	// Path is the URL segment after /api/, e.g. "bank-accounts".
	Path string
	// Singular and Plural name the resource in error messages.
	Singular string
	Plural   string
	// DeleteReturnsRecord makes DELETE answer with the removed row instead
	// of a bare success flag.
	DeleteReturnsRecord bool
	Store               driven.RecordStore[T]

	// decodeCreate and decodeUpdate turn a request body into a record. They
	// default to plain JSON decoding into T.
	decodeCreate func(body []byte) (T, error)
	decodeUpdate func(body []byte) (T, error)
}

// route is a resource that can register its endpoints.
type route interface {
	register(mux *http.ServeMux, logger *slog.Logger)
}

// badRequestError is a client input problem reported with status 400.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

var errInvalidBody = &badRequestError{msg: "Invalid request body"}

func (res *Resource[T]) register(mux *http.ServeMux, logger *slog.Logger) {
	h := &resourceHandler[T]{res: res, logger: logger}

	collection := "/api/" + res.Path
	mux.HandleFunc("GET "+collection, h.list)
	mux.HandleFunc("POST "+collection, h.create)
	mux.HandleFunc("PUT "+collection+"/{id}", h.update)
	mux.HandleFunc("DELETE "+collection+"/{id}", h.remove)
}

type resourceHandler[T any] struct {
	res    *Resource[T]
	logger *slog.Logger
}

func (h *resourceHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.res.Store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list records", "resource", h.res.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch "+h.res.Plural+": "+err.Error())
		return
	}

	if records == nil {
		records = []T{}
	}
	writeData(w, http.StatusOK, records)
}

func (h *resourceHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	record, _, ok := h.decode(w, r, h.res.decodeCreate)
	if !ok {
		return
	}

	created, err := h.res.Store.Create(r.Context(), record)
	if err != nil {
		h.logger.Error("failed to create record", "resource", h.res.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create "+h.res.Singular+": "+err.Error())
		return
	}

	writeData(w, http.StatusCreated, created)
}

func (h *resourceHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	patch, body, ok := h.decode(w, r, h.res.decodeUpdate)
	if !ok {
		return
	}

	updated, err := h.res.Store.Update(r.Context(), id, patch, nullFields(body))
	if err != nil {
		h.logger.Error("failed to update record", "resource", h.res.Path, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update "+h.res.Singular+": "+err.Error())
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (h *resourceHandler[T]) remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if !h.res.DeleteReturnsRecord {
		if err := h.res.Store.Delete(r.Context(), id); err != nil {
			h.logger.Error("failed to delete record", "resource", h.res.Path, "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete "+h.res.Singular+": "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true})
		return
	}

	deleted, err := h.res.Store.DeleteReturning(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete record", "resource", h.res.Path, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete "+h.res.Singular+": "+err.Error())
		return
	}

	writeData(w, http.StatusOK, deleted)
}

// decode reads the request body and converts it with fn, or with plain JSON
// decoding when fn is nil. It also returns the raw body. On failure it writes
// a 400 and returns false.
func (h *resourceHandler[T]) decode(w http.ResponseWriter, r *http.Request, fn func([]byte) (T, error)) (T, []byte, bool) {
	var record T

	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody.msg)
		return record, nil, false
	}

	if fn == nil {
		fn = decodeRecord[T]
	}

	record, err = fn(body)
	if err != nil {
		var bre *badRequestError
		if errors.As(err, &bre) {
			writeError(w, http.StatusBadRequest, bre.msg)
		} else {
			writeError(w, http.StatusBadRequest, errInvalidBody.msg)
		}
		return record, nil, false
	}

	return record, body, true
}

// readBody returns the request body, or "{}" when the body is empty.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return []byte("{}"), nil
	}
	return body, nil
}

// nullFields returns the sorted top-level keys of a JSON object body whose
// value is null. A null decodes the same as a missing key, so updates need
// these names to clear the columns.
func nullFields(body []byte) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil
	}

	var names []string
	for name, raw := range fields {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func decodeRecord[T any](body []byte) (T, error) {
	var record T
	if err := json.Unmarshal(body, &record); err != nil {
		return record, errInvalidBody
	}
	return record, nil
}
