package cache

import (
	"errors"
	"time"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// Service stores typed values under a prefix on top of a raw provider
type Service interface {
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
}

type ServiceConfig struct {
	Ttl   time.Duration
	Pfx   string
	Cache provider.Provider
}
