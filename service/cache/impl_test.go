package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/service/cache/provider"
	"github.com/ghostart/goapi/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type value struct {
	Value string `json:"value"`
}

type testsuite struct {
	suite.Suite
	im    *impl
	cache provider.Provider
}

func (ts *testsuite) SetupTest() {
	ts.cache = primitive.NewPrimitive(1)
	ts.im = New(ServiceConfig{
		Ttl:   time.Second,
		Pfx:   "testing",
		Cache: ts.cache,
	}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestGet() {
	var (
		k = "key"
		v = value{"value"}
		c = &value{}
	)

	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, k, c))

	sv, err := json.Marshal(v)
	ts.NoError(err)
	ts.NoError(ts.cache.Set(mockCtx, "testing:"+k, sv, time.Second))
	ts.NoError(ts.im.Get(mockCtx, k, c))
	ts.Equal(v, *c)
}

func (ts *testsuite) TestGetBadPayload() {
	ts.NoError(ts.cache.Set(mockCtx, "testing:bad", []byte("{"), time.Second))
	ts.Error(ts.im.Get(mockCtx, "bad", &value{}))
}

func (ts *testsuite) TestSet() {
	k := "key"
	ts.NoError(ts.im.Set(mockCtx, k, value{"v"}))

	raw, _, err := ts.cache.Get(mockCtx, "testing:"+k)
	ts.NoError(err)
	ts.JSONEq(`{"value":"v"}`, string(raw))

	c := &value{}
	ts.NoError(ts.im.Get(mockCtx, k, c))
	ts.Equal("v", c.Value)
}

func (ts *testsuite) TestExpiry() {
	short := New(ServiceConfig{Ttl: time.Second, Pfx: "short", Cache: ts.cache})
	ts.NoError(short.Set(mockCtx, "k", value{"v"}))
	ts.Eventually(func() bool {
		return short.Get(mockCtx, "k", &value{}) == ErrNotFound
	}, 3*time.Second, 100*time.Millisecond)
}
