package usecase

import (
	"time"

	"github.com/ghostart/goapi/base/ctx"
	hcdomain "github.com/ghostart/goapi/domain/healthcheck"
)

const pingTimeout = 2 * time.Second

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(c ctx.Ctx) error {
	cont, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()
	if err := im.repo.Ping(cont); err != nil {
		c.WithField("err", err).Error("repo.Ping failed")
		return err
	}
	return nil
}
