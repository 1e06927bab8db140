package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/stores/healthcheck/usecase"
)

type pinger struct {
	err error
}

func (p *pinger) Ping(ctx.Ctx) error {
	return p.err
}

type healthCheckSuite struct {
	suite.Suite
	repo *pinger
	e    *echo.Echo
}

func TestHealthCheckSuite(t *testing.T) {
	suite.Run(t, new(healthCheckSuite))
}

func (s *healthCheckSuite) SetupTest() {
	s.repo = &pinger{}
	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(s.e, usecase.New(s.repo))
}

func (s *healthCheckSuite) get() *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func (s *healthCheckSuite) TestOk() {
	rec := s.get()
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"ok"`)
	s.Contains(rec.Body.String(), `"timestamp":`)
	s.NotContains(rec.Body.String(), `"error"`)
}

func (s *healthCheckSuite) TestPingFailure() {
	s.repo.err = errors.New("server selection timeout")
	rec := s.get()
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), `"status":"error"`)
	s.Contains(rec.Body.String(), `"error":"server selection timeout"`)
}
