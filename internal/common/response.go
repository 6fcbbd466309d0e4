package common

import (
	"errors"
	"fmt"
)

// Response is the success envelope.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the failure envelope. Errors is never null.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// NewResponse builds a success envelope.
func NewResponse(status int, data any, message string) Response {
	if message == "" {
		message = MsgSuccess
	}
	return Response{StatusCode: status, Data: data, Message: message, Success: true}
}

// NewErrorResponse renders any error into the failure envelope.
// Internal details are never exposed to the caller.
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		StatusCode: StatusInternalServerError,
		Message:    MsgInternalError,
		Errors:     []string{},
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		return resp
	}

	resp.StatusCode = appErr.StatusCode
	resp.Message = appErr.Message
	if appErr.StatusCode < StatusInternalServerError {
		resp.Errors = detailStrings(appErr.Details)
	}
	return resp
}

func detailStrings(details any) []string {
	switch d := details.(type) {
	case nil:
		return []string{}
	case []string:
		return d
	case string:
		return []string{d}
	case error:
		return []string{d.Error()}
	case map[string]string:
		out := make([]string, 0, len(d))
		for k, v := range d {
			out = append(out, fmt.Sprintf("%s: %s", k, v))
		}
		return out
	default:
		return []string{fmt.Sprint(d)}
	}
}
