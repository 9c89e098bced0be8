// Package http provides the HTTP surface of the storefront: the public
// catalog and gallery reads, image serving, the admin login flow, and the
// session-guarded write endpoints.
package http
