package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/domain"
)

// JsonResponse is the envelope of every API response
type JsonResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type RespOption func(*JsonResponse)

// WithMessage sets the human readable message
func WithMessage(msg string) RespOption {
	return func(r *JsonResponse) {
		r.Message = msg
	}
}

// WithCount reports the number of items in data
func WithCount(count int) RespOption {
	return func(r *JsonResponse) {
		r.Count = &count
	}
}

// StatusOf maps an error to its HTTP status by kind
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// MakeJsonResp writes data in the response envelope. When data is an error the
// status is derived from it (status 0) or taken as given, and unexpected
// errors are hidden behind a generic message.
func MakeJsonResp(c echo.Context, status int, data interface{}, opts ...RespOption) error {
	if err, ok := data.(error); ok {
		if status == 0 {
			status = StatusOf(err)
		}
		msg := err.Error()
		var dErr *domain.Error
		if status >= http.StatusInternalServerError && !errors.As(err, &dErr) {
			if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
				cont.WithField("err", err).Error("internal error")
			}
			msg = domain.ErrInternalServerError.Error()
		}
		return c.JSON(status, JsonResponse{Success: false, Error: msg})
	}

	if status >= 400 {
		msg, _ := data.(string)
		return c.JSON(status, JsonResponse{Success: false, Error: msg})
	}

	res := JsonResponse{Success: true, Data: data}
	for _, opt := range opts {
		opt(&res)
	}
	return c.JSON(status, res)
}

// HTTPErrorHandler renders errors escaping the handlers, e.g. unknown routes
// or recovered panics, in the same envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := domain.ErrInternalServerError.Error()
		if he.Code < http.StatusInternalServerError {
			msg = http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}
		err = MakeJsonResp(c, he.Code, msg)
	} else {
		err = MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	if err != nil {
		if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
			cont.WithField("err", err).Error("failed to write error response")
		}
	}
}
