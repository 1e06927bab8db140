package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type recordClient struct {
	counts map[string]int64
	hists  map[string][]float64
	times  map[string]float64
	tags   map[string][]string
}

func (r *recordClient) Count(name string, value int64, tags []string, rate float64) error {
	r.counts[name] += value
	r.tags[name] = tags
	return nil
}

func (r *recordClient) Histogram(name string, value float64, tags []string, rate float64) error {
	r.hists[name] = append(r.hists[name], value)
	r.tags[name] = tags
	return nil
}

func (r *recordClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	r.times[name] = value
	r.tags[name] = tags
	return nil
}

type metricsSuite struct {
	suite.Suite
	rec *recordClient
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(metricsSuite))
}

func (s *metricsSuite) SetupTest() {
	s.rec = &recordClient{
		counts: map[string]int64{},
		hists:  map[string][]float64{},
		times:  map[string]float64{},
		tags:   map[string][]string{},
	}
	initOnce.Do(func() {})
	cli = s.rec
}

func (s *metricsSuite) TearDownTest() {
	nowFunc = time.Now
}

func (s *metricsSuite) TestBumpSum() {
	met := New("nft")
	met.BumpSum("mint", 1, "result", "ok")
	met.BumpSum("mint", 2, "result", "ok")
	s.Equal(int64(3), s.rec.counts["nft.mint"])
	s.Contains(s.rec.tags["nft.mint"], "result:ok")
}

func (s *metricsSuite) TestBumpHistogram() {
	met := New("http")
	met.BumpHistogram("response.size", 120, "path", "/api/nfts")
	met.BumpHistogram("response.size", 40, "path", "/api/nfts")
	s.Equal([]float64{120, 40}, s.rec.hists["http.response.size"])
	s.Contains(s.rec.tags["http.response.size"], "path:/api/nfts")
}

func (s *metricsSuite) TestBumpTime() {
	now := time.Unix(1000, 0)
	nowFunc = func() time.Time { return now }
	ender := New("http").BumpTime("request.time", "method", "GET")
	now = now.Add(1500 * time.Microsecond)
	ender.End()
	s.InDelta(1.5, s.rec.times["http.request.time"], 1e-9)
	s.Contains(s.rec.tags["http.request.time"], "method:GET")
}

func (s *metricsSuite) TestOddTagsRecovered() {
	s.NotPanics(func() {
		New("nft").BumpSum("mint", 1, "dangling")
	})
	s.Equal(int64(1), s.rec.counts["nft.bumpsum.panic"])
}
