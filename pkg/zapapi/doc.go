// Package zapapi provides the call-dispatch core for the ZAP control-plane API.
//
// ZAP exposes its API as pseudo-REST calls addressed by a locator of the form
//
//	http://zap/{format}/{component}/{kind}/{method}/?k1=v1&k2=v2
//
// where kind is one of view (read-only), action (mutating, carries the API
// key) or other (raw text or binary payloads such as reports).
//
// # Quick Start
//
//	c := zapapi.New(
//	    zapapi.WithProxy("localhost", 8080),
//	    zapapi.WithAPIKey("changeme"),
//	)
//	version, err := zapapi.CallView[string](ctx, c, c.Component("core"), "version", "version", nil)
//
// # Parameters
//
// Params preserves insertion order and distinguishes a parameter that is
// absent from one sent empty or sent as null:
//
//	p := zapapi.NewParams().
//	    Set("url", "http://example.com").
//	    SetBool("recurse", true).
//	    SetNull("contextId")
//
// # Errors
//
// Every failure is an *APIError classified by ErrorKind. Use errors.Is with
// the sentinel errors to branch:
//
//	err := c.CallAction(ctx, c.Component("ascan"), "stop", p)
//	switch {
//	case errors.Is(err, zapapi.ErrActionFailed):
//	    // remote side reported FAIL
//	case errors.Is(err, zapapi.ErrTransport):
//	    // proxy unreachable
//	}
//
// # Legacy Lists
//
// A few endpoints return the text "[a, b, c]" instead of a JSON array.
// ParseListString decodes that format.
package zapapi
