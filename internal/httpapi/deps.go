package httpapi

import (
	"sync/atomic"
	"time"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/query"
	"jobtrack-engine/internal/store"
)

type Deps struct {
	Store *store.Store

	Hub *events.Hub

	// Memoized derived views; every handler that writes relies on the
	// store revision to invalidate it.
	Cache *query.Cache

	// Atomic store for the live config (reloadable via PUT /config).
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Clock, injectable for tests; nil means time.Now.
	Now func() time.Time
}
