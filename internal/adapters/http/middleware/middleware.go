// Package middleware
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain applies middlewares in the order they were added; the first one
// sees the request first.
type Chain struct {
	middlewares []Middleware
}

func New(mws ...Middleware) *Chain {
	return &Chain{middlewares: append([]Middleware{}, mws...)}
}

func (c *Chain) Use(mw Middleware) *Chain {
	c.middlewares = append(c.middlewares, mw)
	return c
}

// Extend returns a new chain; c is left untouched.
func (c *Chain) Extend(mw Middleware) *Chain {
	return New(append(append([]Middleware{}, c.middlewares...), mw)...)
}

func (c *Chain) Then(h http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h
}

func (c *Chain) ThenFunc(fn http.HandlerFunc) http.Handler {
	return c.Then(fn)
}
