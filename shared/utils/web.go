package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aribt/hackathon-cms/shared/errors"
	"github.com/aribt/hackathon-cms/shared/logger"
	"github.com/aribt/hackathon-cms/shared/validation"
)

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("encoding JSON response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// WriteErrorAndStatusCode answers with {"error": ...} and the status carried
// by err (500 when it carries none).
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	WriteJSON(w, errors.StatusCode(err), map[string]string{"error": err.Error()})
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validation.Struct(body); err != nil {
		logger.Log.Debug("request body failed validation", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest, Cause: err}
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body is not valid JSON", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest, Cause: err}
	}
	return nil
}
