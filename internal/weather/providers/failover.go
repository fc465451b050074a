package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/arca/internal/weather"
)

// Failover asks each gateway in order and returns the first successful reading.
type Failover struct {
	gateways []weather.Gateway
}

func NewFailover(gateways ...weather.Gateway) *Failover {
	return &Failover{gateways: gateways}
}

func (f *Failover) Name() string {
	names := make([]string, 0, len(f.gateways))
	for _, g := range f.gateways {
		names = append(names, g.Name())
	}
	return strings.Join(names, "+")
}

func (f *Failover) Current(ctx context.Context, at weather.Coordinates) (weather.Reading, error) {
	if len(f.gateways) == 0 {
		return weather.Reading{}, fmt.Errorf("no weather gateways configured")
	}

	var errs []error
	for _, g := range f.gateways {
		r, err := g.Current(ctx, at)
		if err == nil {
			return r, nil
		}
		log.WithFields(log.Fields{"provider": g.Name(), "error": err}).Debug("weather gateway failed; trying next")
		errs = append(errs, fmt.Errorf("%s: %w", g.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return weather.Reading{}, errors.Join(errs...)
}
