package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/ghostart/goapi/base/ctx"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	e        *echo.Echo
	mw       echo.MiddlewareFunc
	revision int64
	revErr   error
	calls    int
}

func (s *cacheMiddlewareSuite) SetupSuite() {
	SetupCache(16)
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.e = echo.New()
	s.revision = 1
	s.revErr = nil
	s.calls = 0
	s.mw = CacheHttp(30*time.Second, s.rev)
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) rev(ctx.Ctx) (int64, error) {
	return s.revision, s.revErr
}

func (s *cacheMiddlewareSuite) serve(target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("ctx", ctx.WithValue(ctx.Background(), "requestID", "test"))
	s.NoError(s.mw(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) counting(body string, status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.calls++
		return c.JSON(status, map[string]string{"body": body})
	}
}

func (s *cacheMiddlewareSuite) TestCacheHit() {
	rec := s.serve("/hit?b=2&a=1", s.counting("first", http.StatusOK))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("MISS", rec.Header().Get(HeaderXCache))
	s.JSONEq(`{"body":"first"}`, rec.Body.String())

	// same query in another order hits the same entry
	rec = s.serve("/hit?a=1&b=2", s.counting("second", http.StatusOK))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("HIT", rec.Header().Get(HeaderXCache))
	s.Equal(echo.MIMEApplicationJSONCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	s.JSONEq(`{"body":"first"}`, rec.Body.String())
	s.Equal(1, s.calls)
}

func (s *cacheMiddlewareSuite) TestRevisionInvalidates() {
	s.serve("/rev", s.counting("first", http.StatusOK))
	s.revision++
	rec := s.serve("/rev", s.counting("second", http.StatusOK))
	s.Equal("MISS", rec.Header().Get(HeaderXCache))
	s.JSONEq(`{"body":"second"}`, rec.Body.String())
	s.Equal(2, s.calls)
}

func (s *cacheMiddlewareSuite) TestInstancesDoNotShare() {
	s.serve("/shared", s.counting("first", http.StatusOK))
	s.mw = CacheHttp(30*time.Second, s.rev)
	rec := s.serve("/shared", s.counting("second", http.StatusOK))
	s.Equal("MISS", rec.Header().Get(HeaderXCache))
	s.JSONEq(`{"body":"second"}`, rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestErrorsNotCached() {
	s.serve("/err", s.counting("oops", http.StatusInternalServerError))
	rec := s.serve("/err", s.counting("fine", http.StatusOK))
	s.Equal("MISS", rec.Header().Get(HeaderXCache))
	s.JSONEq(`{"body":"fine"}`, rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestRevisionFailureBypasses() {
	s.revErr = errors.New("store down")
	s.serve("/bypass", s.counting("first", http.StatusOK))
	rec := s.serve("/bypass", s.counting("second", http.StatusOK))
	s.Empty(rec.Header().Get(HeaderXCache))
	s.JSONEq(`{"body":"second"}`, rec.Body.String())
	s.Equal(2, s.calls)
}
