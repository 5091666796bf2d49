// Package loader fetches the read models shown by a client in one round trip,
// off the caller's goroutine.
package loader

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go-order-desk/internal/model"
	"go-order-desk/internal/repository"
	"go-order-desk/pkg/apperr"
	"go-order-desk/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Snapshot struct {
	Customers []model.Customer  `json:"customers"`
	Products  []model.Product   `json:"products"`
	Orders    []model.Order     `json:"orders"`
	Stats     *repository.Stats `json:"stats"`
	LoadedAt  time.Time         `json:"loaded_at"`
}

// Sources is the read side the loader needs; service method values fit it.
type Sources struct {
	Customers func(ctx context.Context) ([]model.Customer, error)
	Products  func(ctx context.Context) ([]model.Product, error)
	Orders    func(ctx context.Context) ([]model.Order, error)
	Stats     func(ctx context.Context) (*repository.Stats, error)
}

type Loader struct {
	src      Sources
	inflight atomic.Int32
}

func New(src Sources) *Loader {
	return &Loader{src: src}
}

// Busy reports whether at least one Load is still running
func (l *Loader) Busy() bool {
	return l.inflight.Load() > 0
}

// Load starts a background load and calls done exactly once with the result.
// done runs on the loader's goroutine and must be safe for that. Busy is
// already true when Load returns.
func (l *Loader) Load(ctx context.Context, done func(*Snapshot, error)) {
	l.inflight.Add(1)
	go func() {
		defer l.inflight.Add(-1)
		done(l.LoadSync(ctx))
	}()
}

// LoadSync loads all collections concurrently and returns the first failure
func (l *Loader) LoadSync(ctx context.Context) (snap *Snapshot, err error) {
	l.inflight.Add(1)
	defer l.inflight.Add(-1)

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			snap, err = nil, panicError(r)
		}
		log := logger.FromContext(ctx)
		if err != nil {
			log.Warn("snapshot load failed", zap.Error(err))
			return
		}
		log.Debug("snapshot loaded", zap.Duration("took", time.Since(start)))
	}()

	var s Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(func() (err error) { s.Customers, err = l.src.Customers(gctx); return }))
	g.Go(guard(func() (err error) { s.Products, err = l.src.Products(gctx); return }))
	g.Go(guard(func() (err error) { s.Orders, err = l.src.Orders(gctx); return }))
	g.Go(guard(func() (err error) { s.Stats, err = l.src.Stats(gctx); return }))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.LoadedAt = time.Now()
	return &s, nil
}

// guard turns a panic in fn into an error so one bad read cannot kill the process
func guard(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = panicError(r)
			}
		}()
		return fn()
	}
}

func panicError(r interface{}) error {
	return apperr.Wrap(apperr.KindInternal, "snapshot load panicked", fmt.Errorf("%v", r))
}
