package mock

import (
	"context"
)

type adapterConfig struct {
	querySideEffects map[string]func(context.Context) error
	affectedRows     int64
	connectErr       error
}

type AdapterOption func(*adapterConfig)

func AdapterWithQuerySideEffect(query string, sideEffect func(context.Context) error) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.querySideEffects[query]
		if ok {
			panic("side effect already registered for query: " + query)
		}

		c.querySideEffects[query] = sideEffect
	}
}

func AdapterWithAffectedRows(n int64) AdapterOption {
	return func(c *adapterConfig) {
		c.affectedRows = n
	}
}

func AdapterWithConnectError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.connectErr = err
	}
}
