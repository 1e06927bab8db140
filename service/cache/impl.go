package cache

import (
	"encoding/json"
	"time"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/service/cache/provider"
)

type impl struct {
	ttl   time.Duration
	pfx   string
	cache provider.Provider
}

// New returns a Service storing values as json
func New(config ServiceConfig) Service {
	return &impl{
		ttl:   config.Ttl,
		pfx:   config.Pfx,
		cache: config.Cache,
	}
}

func (im *impl) key(key string) string {
	return im.pfx + ":" + key
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = im.key(key)

	if val, _, err := im.cache.Get(c, key); err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return err
	} else if err := json.Unmarshal(val, container); err != nil {
		c.WithField("err", err).WithField("key", key).Error("json.Unmarshal failed")
		return err
	}

	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	key = im.key(key)

	if val, err := json.Marshal(value); err != nil {
		c.WithField("err", err).WithField("key", key).Error("json.Marshal failed")
		return err
	} else if err := im.cache.Set(c, key, val, im.ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}

	return nil
}
