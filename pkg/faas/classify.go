package faas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Status codes the platform answers with an error payload.
const (
	statusUnauthorized        = http.StatusUnauthorized
	statusLimitExceeded       = http.StatusPaymentRequired
	statusNotFound            = http.StatusNotFound
	statusRequestTimeout      = http.StatusRequestTimeout
	statusConflict            = http.StatusConflict
	statusUnprocessableEntity = http.StatusUnprocessableEntity
	statusInternalServerError = http.StatusInternalServerError
)

// Classify maps an HTTP status and raw body to a Result.
//
// The body is not parsed for 500 and 408. For every other status it must be
// JSON (an empty body counts as null); anything else yields a *ProtocolError.
func Classify(statusCode int, raw []byte) (Result, error) {
	var body any

	if statusCode != statusInternalServerError && statusCode != statusRequestTimeout {
		if len(bytes.TrimSpace(raw)) > 0 {
			err := json.Unmarshal(raw, &body)
			if err != nil {
				return nil, &ProtocolError{StatusCode: statusCode, Body: raw, Err: err}
			}
		}
	}

	switch statusCode {
	case statusUnauthorized:
		return failure(statusCode, "(401) Unauthorized - "+errorField(body)), nil
	case statusNotFound:
		return failure(statusCode, "(404) Not Found - "+errorField(body)), nil
	case statusConflict:
		return failure(statusCode, "(409) Conflict - "+errorField(body)), nil
	case statusInternalServerError:
		return failure(statusCode, "(500) Error"), nil
	case statusRequestTimeout:
		return failure(statusCode, "(408) Request Timeout"), nil
	case statusLimitExceeded:
		return failure(statusCode, "(402) Limit Exceeded - "+errorField(body)), nil
	case statusUnprocessableEntity:
		messages := []string{"(422) Unprocessable Entity"}

		if value, ok := field(body, "error"); ok {
			messages = append(messages, stringify(value))
		}

		messages = append(messages, listField(body, "errors")...)

		return failure(statusCode, messages...), nil
	default:
		return &Success{
			Body:   body,
			Raw:    raw,
			Errors: listField(body, "errors"),
			Code:   statusCode,
		}, nil
	}
}

func failure(code int, messages ...string) *Failure {
	return &Failure{Messages: messages, Code: code}
}

// field returns a top-level member of a JSON object. Null and false count
// as absent.
func field(body any, key string) (any, bool) {
	object, ok := body.(map[string]any)
	if !ok {
		return nil, false
	}

	value, ok := object[key]
	if !ok || value == nil || value == false {
		return nil, false
	}

	return value, true
}

func errorField(body any) string {
	value, ok := field(body, "error")
	if !ok {
		return ""
	}

	return stringify(value)
}

// listField returns the entries of a list member; a scalar member counts as a
// single entry. The result is never nil.
func listField(body any, key string) []string {
	value, ok := field(body, key)
	if !ok {
		return []string{}
	}

	entries, ok := value.([]any)
	if !ok {
		return []string{stringify(value)}
	}

	list := make([]string, 0, len(entries))
	for _, entry := range entries {
		list = append(list, stringify(entry))
	}

	return list
}

func stringify(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case map[string]any, []any:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}

		return string(encoded)
	default:
		return fmt.Sprint(typed)
	}
}
