package ctx

import (
	"context"
	"time"

	log "github.com/ghostart/goapi/base/log"
)

// Ctx is the request scoped context passed through handlers, usecases and repositories.
// It embeds a logger already tagged with the request's fields.
type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

// From wraps a plain context, e.g. the one attached to an *http.Request
func From(parent context.Context) Ctx {
	return Ctx{
		Context: parent,
		Logger:  log.Log(),
	}
}

// WithValue stores val under key and tags the logger with it
func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent.Context, ctxKey(key), val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent.Context, timeout)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

type ctxKey string
