package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/ghostart/goapi/base/log"
)

const (
	// DdPort is the dogstatsd agent port
	DdPort = 8125
	// buffer 10 metrics before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}
	cli      statsCli

	nowFunc = time.Now
)

type statsCli interface {
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// client connects to the datadog agent at datadog_host, or logs metrics when
// no agent is configured
func client() statsCli {
	initOnce.Do(func() {
		host := viper.GetString("datadog_host")
		if host == "" {
			cli = &LogClient{}
			return
		}

		addr := fmt.Sprintf("%s:%d", host, DdPort)
		log.Log().WithField("addr", addr).Info("connecting to datadog agent")
		c, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("can't talk to datadog agent, fallback to log client")
			cli = &LogClient{}
			return
		}
		cli = c
	})
	return cli
}

func logBumpFail(err error, key string, val float64, fn string) {
	log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (t *timeTracker) End() {
	dur := float64(nowFunc().Sub(t.start)) / float64(time.Millisecond)
	if err := client().TimeInMilliseconds(t.key, dur, t.tags, 1); err != nil {
		logBumpFail(err, t.key, dur, "BumpTime")
	}
}
