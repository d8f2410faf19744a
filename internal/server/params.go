package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	errs "github.com/shannonchou/SquareFlowLayout/pkg/errors"
	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 12

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errs.New(errs.ErrCodeInvalidInput, "missing query parameter %q", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "query parameter %q", name)
	}
	return v, nil
}

// parseRect reads the x, y, w and h query parameters.
func parseRect(r *http.Request) (layout.Rect, error) {
	var vals [4]float64
	for i, name := range []string{"x", "y", "w", "h"} {
		v, err := parseFloatParam(r, name)
		if err != nil {
			return layout.Rect{}, err
		}
		vals[i] = v
	}
	if err := errs.ValidateRect(vals[0], vals[1], vals[2], vals[3]); err != nil {
		return layout.Rect{}, err
	}
	return layout.Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

func parsePosition(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "position")
	p, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "position %q", raw)
	}
	return p, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "decode body")
	}
	return nil
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func statusOf(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidConfig, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidRect:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeOutOfRange:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: errs.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, "application/json", data)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(data)
}
