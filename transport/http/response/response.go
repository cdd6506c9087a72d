package response

import (
	"encoding/json"
	"net/http"
	"roomify/shared/constant"
	"roomify/shared/failure"
	"roomify/shared/logger"
)

const internalErrorMessage = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type DataWithError[T any] struct {
	Data  *T      `json:"data,omitempty"`
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	write(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends err with the status carried by its failure kind. Errors
// without a kind are logged and reported as a bare 500.
func WithError(writer http.ResponseWriter, err error) {
	code, errMsg := describe(err)

	write(writer, code, Error{Error: &errMsg})
}

// WithErrorAndJSON sends err like WithError and keeps the partial result the
// caller still has next to it.
func WithErrorAndJSON(writer http.ResponseWriter, err error, jsonPayload any) {
	code, errMsg := describe(err)

	write(writer, code, DataWithError[any]{Data: &jsonPayload, Error: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func describe(err error) (int, string) {
	code := failure.GetCode(err)

	if code == http.StatusInternalServerError && !failure.IsFailure(err) {
		logger.ErrorWithStack(err)

		return code, internalErrorMessage
	}

	return code, failure.GetMessage(err)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
