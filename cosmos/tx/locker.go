package tx

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// AddressLocker serializes submissions per signer address, so that each one fetches a sequence after the
// previous one was accepted.
type AddressLocker struct {
	lock       sync.Mutex
	semaphores map[string]*semaphore.Weighted
}

func NewAddressLocker() *AddressLocker {
	return &AddressLocker{
		semaphores: make(map[string]*semaphore.Weighted),
	}
}

// Lock blocks until address is free or ctx is done. The returned func releases it.
func (l *AddressLocker) Lock(ctx context.Context, address string) (func(), error) {
	sem := l.semaphoreFor(address)
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { sem.Release(1) })
	}, nil
}

func (l *AddressLocker) semaphoreFor(address string) *semaphore.Weighted {
	l.lock.Lock()
	defer l.lock.Unlock()

	sem, ok := l.semaphores[address]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.semaphores[address] = sem
	}
	return sem
}
