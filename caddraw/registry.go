package caddraw

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// ErrUnknownDriver is returned by Lookup and NewDriver for unregistered names.
var ErrUnknownDriver = errors.New("caddraw: unknown driver")

// DriverFactory returns a driver writing its document to w.
type DriverFactory func(w io.Writer) Driver

var (
	registryMu sync.RWMutex
	drivers    = make(map[string]DriverFactory)
)

// Register makes a driver available by name.
// It is typically called from the init function of the driver package:
//
//	func init() {
//		caddraw.Register("svg", func(w io.Writer) caddraw.Driver { return NewDriver(w) })
//	}
//
// Register panics if factory is nil or if name is already registered.
func Register(name string, factory DriverFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("caddraw: Register factory is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("caddraw: Register called twice for " + name)
	}
	drivers[name] = factory
}

// Unregister removes a driver from the registry. It is a no-op for
// unknown names.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(drivers, name)
}

// Lookup returns the factory registered as `name`, so that callers
// may check a driver name before opening its destination.
func Lookup(name string) (DriverFactory, error) {
	registryMu.RLock()
	factory, ok := drivers[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownDriver, name)
	}
	return factory, nil
}

// NewDriver returns a new instance of the driver registered as `name`.
func NewDriver(name string, w io.Writer) (Driver, error) {
	factory, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return factory(w), nil
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
