/*
Package metrics wraps datadog-go to record request and store metrics.
Naming convention:
- Internal process time: *.time
- Error: *.err
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/ghostart/goapi/base/env"
)

// Ender is returned by BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client prefixed with pkgName
func New(pkgName string) Service {
	return &Metrics{
		pkgName: pkgName,
		ddTags: []string{
			"host:", // drops the agent host tag
			"pod:" + env.PodName(),
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
	}
}

type Metrics struct {
	pkgName string
	ddTags  []string
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + "." + key
}

func (mt *Metrics) tags(tags []string) []string {
	return append(append([]string{}, mt.ddTags...), parseTag(tags)...)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverBump("bumpsum", key, tags)
	if err := client().Count(mt.key(key), int64(val), mt.tags(tags), 1); err != nil {
		logBumpFail(err, key, val, "BumpSum")
	}
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverBump("bumphistogram", key, tags)
	if err := client().Histogram(mt.key(key), val, mt.tags(tags), 1); err != nil {
		logBumpFail(err, key, val, "BumpHistogram")
	}
}

// BumpTime starts a timer which is reported when End is called:
//
//	defer met.BumpTime("request.time").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: nowFunc(),
		key:   mt.key(key),
		tags:  mt.tags(tags),
	}
}

func (mt *Metrics) recoverBump(typ, key string, tags []string) {
	if err := recover(); err != nil {
		_ = client().Count(mt.key(typ+".panic"), 1, []string{"tag:" + key + "#" + strings.Join(tags, "#")}, 1)
	}
}

func parseTag(tags []string) []string {
	if len(tags)%2 != 0 {
		panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
