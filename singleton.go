package nasc

import (
	"sync"

	"github.com/toutaio/toutago-nasc-typed-factories/registry"
)

// singletonInstance holds a singleton value and ensures it's created only once.
type singletonInstance struct {
	value interface{}
	err   error
	once  sync.Once
}

// singletonCache manages singleton instances with thread-safe lazy initialization.
// Named bindings of the same type get their own instance.
type singletonCache struct {
	instances map[registry.Key]*singletonInstance
	mu        sync.RWMutex
}

func newSingletonCache() *singletonCache {
	return &singletonCache{
		instances: make(map[registry.Key]*singletonInstance),
	}
}

// getOrCreate retrieves an existing singleton or creates it using the provided factory.
// The factory is called exactly once per key, even under concurrent access.
// A failed creation is cached as well.
func (sc *singletonCache) getOrCreate(key registry.Key, factory func() (interface{}, error)) (interface{}, error) {
	sc.mu.RLock()
	instance, exists := sc.instances[key]
	sc.mu.RUnlock()

	if !exists {
		sc.mu.Lock()
		instance, exists = sc.instances[key]
		if !exists {
			instance = &singletonInstance{}
			sc.instances[key] = instance
		}
		sc.mu.Unlock()
	}

	instance.once.Do(func() {
		instance.value, instance.err = factory()
	})

	return instance.value, instance.err
}

// len reports how many singletons have been requested so far.
func (sc *singletonCache) len() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.instances)
}
