package ctx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ctxSuite struct {
	suite.Suite
}

func TestCtxSuite(t *testing.T) {
	suite.Run(t, new(ctxSuite))
}

func (s *ctxSuite) TestWithValue() {
	c := WithValue(Background(), "requestID", "abc")
	s.Equal("abc", c.Context.Value(ctxKey("requestID")))
	s.Nil(Background().Context.Value(ctxKey("requestID")))
	// plain string keys must not collide with the typed key
	s.Nil(c.Context.Value("requestID"))
}

func (s *ctxSuite) TestWithTimeout() {
	c, cancel := WithTimeout(Background(), 10*time.Millisecond)
	defer cancel()
	<-c.Done()
	s.Error(c.Err())
}
