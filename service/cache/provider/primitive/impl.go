package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/base/log"
	"github.com/ghostart/goapi/service/cache/provider"
)

type impl struct {
	cache *freecache.Cache
}

// NewPrimitive creates an in-process cache of sizeMB megabytes
func NewPrimitive(sizeMB int) provider.Provider {
	return &impl{freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, ttl, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return nil, 0, err
	}
	return val, time.Duration(ttl) * time.Second, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	// freecache rejects entries larger than 1/1024 of its size
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "size": len(value)}).Warn("cache.Set failed")
		return err
	}
	return nil
}
