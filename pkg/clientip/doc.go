// Package clientip resolves the client address of a request behind proxies
// and carries it in the request context for rate limiting and logs.
//
//	r.Use(clientip.Middleware)
//	ip := clientip.FromContext(r.Context())
package clientip
