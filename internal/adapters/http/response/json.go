// Package response
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"kunlun/internal/logger"
)

type ResponseWriter interface {
	Write(w http.ResponseWriter, status int, data *Response)
	WriteError(w http.ResponseWriter, status int, message string)
	WriteValidationError(w http.ResponseWriter, errors map[string]string)
}

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success   bool               `json:"success"`
	Timestamp string             `json:"timestamp"`
	Data      any                `json:"data"`
	Error     *string            `json:"error"`
	Errors    *map[string]string `json:"errors,omitempty"`
}

type JSONWriter struct {
	log logger.Logger
	now func() time.Time
}

func NewJSONWriter(log logger.Logger) ResponseWriter {
	return &JSONWriter{log: log, now: time.Now}
}

func (j *JSONWriter) Write(w http.ResponseWriter, status int, data *Response) {
	if data == nil {
		data = &Response{}
	}
	data.Success = status >= 200 && status < 300
	data.Timestamp = j.now().UTC().Format(time.RFC3339Nano)

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		j.log.Error("failed to write json response", "error", err.Error())
	}
}

func (j *JSONWriter) WriteError(w http.ResponseWriter, status int, message string) {
	j.Write(w, status, &Response{Error: &message})
}

func (j *JSONWriter) WriteValidationError(w http.ResponseWriter, errors map[string]string) {
	keys := make([]string, 0, len(errors))
	for k := range errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	firstField := keys[0]
	mainMessage := errors[firstField]
	remaining := len(errors) - 1

	var finalMessage string
	switch remaining {
	case 0:
		finalMessage = mainMessage
	case 1:
		finalMessage = fmt.Sprintf("%s (and 1 more error)", mainMessage)
	default:
		finalMessage = fmt.Sprintf("%s (and %d more errors)", mainMessage, remaining)
	}

	j.Write(w, http.StatusBadRequest, &Response{
		Error:  &finalMessage,
		Errors: &errors,
	})
}
