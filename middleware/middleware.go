package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/base/delivery"
	"github.com/ghostart/goapi/base/log"
	"github.com/ghostart/goapi/base/metrics"
	"github.com/ghostart/goapi/base/validator"
	"github.com/ghostart/goapi/domain"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	met metrics.Service
}

// InitMiddleware initialize the middleware
func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{met: metrics.New("http")}
}

// AddContext attaches a ctx.Ctx scoped with the request id
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			cont := ctx.WithValue(ctx.From(c.Request().Context()), "requestID", requestID)
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs response for every request
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer m.met.BumpTime("request.time", "method", c.Request().Method, "path", c.Path()).End()

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := log.Fields{
				"ms":         time.Since(start).Seconds() * 1000,
				"httpStatus": res.Status,
				"host":       req.Host,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.Path,
				"httpMethod": req.Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
				"referer":    req.Header.Get("Referer"),
			}

			m.met.BumpHistogram("response.size", float64(res.Size), "method", req.Method, "path", c.Path())

			if res.Status >= 400 && err != nil {
				fields["nextErr"] = err
			}

			if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
				cont.WithFields(fields).Info("response")
			} else {
				log.Log().WithFields(fields).Info("response")
			}
			return nil
		}
	}
}

// IsValidAddress rejects requests whose path param is not a wallet address
func IsValidAddress(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			if !validator.IsValidAddress(c.Param(param)) {
				return delivery.MakeJsonResp(c, 0, domain.ErrInvalidAddress)
			}
			return next(c)
		}
	}
}
