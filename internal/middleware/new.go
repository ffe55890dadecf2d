package middleware

import "zotero-notion-sync/pkg/log"

// Middleware holds the dependencies of the gin middlewares.
type Middleware struct {
	l           log.Logger
	internalKey string
}

// New creates the middleware set. An empty internalKey disables Auth.
func New(l log.Logger, internalKey string) Middleware {
	return Middleware{
		l:           l,
		internalKey: internalKey,
	}
}
