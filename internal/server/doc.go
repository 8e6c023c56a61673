// Package server provides HTTP routing, middleware, and the OAuth callback handler used by the loopback
// authorization flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [CallbackHandler] receives the redirect from the Google consent page. It validates the state parameter
// (CSRF protection) and hands the authorization code to the waiting prompter through a channel.
// The code exchange itself stays with the credential manager so that both the manual and the loopback
// flows share it.
//
// It only processes one callback to prevent replay attacks.
//
// # Current Usage
//
// When auth.flow is "loopback", a temporary HTTP server starts on server.host:server.port, handles
// /callback, and shuts down after a code (or an error) arrives.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
