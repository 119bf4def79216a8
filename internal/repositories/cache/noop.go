package cache

import (
	"context"
	"time"
)

// NoopStore is used when Redis is disabled; every lookup misses.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string, interface{}) (bool, error)               { return false, nil }
func (NoopStore) Set(context.Context, string, interface{}) error                       { return nil }
func (NoopStore) SetWithTTL(context.Context, string, interface{}, time.Duration) error { return nil }
func (NoopStore) Delete(context.Context, ...string) error                              { return nil }
func (NoopStore) DeletePattern(context.Context, string) error                          { return nil }
func (NoopStore) Ping(context.Context) error                                           { return nil }
func (NoopStore) Stats() Stats                                                         { return Stats{} }
func (NoopStore) Close() error                                                         { return nil }
