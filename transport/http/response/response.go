package response

import (
	"encoding/json"
	"net/http"
	"venuebook/shared/constant"
	"venuebook/shared/failure"
	"venuebook/shared/logger"
)

const internalErrorMessage = "internal server error"

type Data[T any] struct {
	Success   bool `json:"success"`
	Data      *T   `json:"data,omitempty"`
	Count     *int `json:"count,omitempty"`
	TotalPage *int `json:"total_page,omitempty"`
}

type Error struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error"`
	Errors  []failure.FieldError `json:"errors,omitempty"`
}

type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: code < http.StatusBadRequest, Message: message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Success: true, Data: &jsonPayload})
}

// WithList sends a page of items together with the total count and page count.
func WithList[T any](writer http.ResponseWriter, items []T, count, totalPage int) {
	if items == nil {
		items = []T{}
	}

	response(writer, http.StatusOK, Data[[]T]{Success: true, Data: &items, Count: &count, TotalPage: &totalPage})
}

// WithError sends a response with an error message and any field violations.
// Unclassified errors are reported without their internal detail.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	errMsg := err.Error()
	if code == http.StatusInternalServerError {
		logger.ErrorWithStack(err)

		errMsg = internalErrorMessage
	}

	response(writer, code, Error{Error: errMsg, Errors: failure.GetErrors(err)})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithError(writer, &failure.Failure{Code: http.StatusTooManyRequests, Message: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithError(writer, &failure.Failure{Code: http.StatusServiceUnavailable, Message: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithError(writer, &failure.Failure{Code: http.StatusServiceUnavailable, Message: constant.ResponseErrorUnhealthy})
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
