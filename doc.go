// Package farmstand implements a small storefront and image gallery backend:
// a public product catalog, a captioned image gallery with file upload, and a
// session-authenticated admin surface for managing both.
//
// The root package holds the domain types and the StoreService that ties the
// pieces together. Persistence backends live under database/, physical image
// storage under filesystem/, the HTTP API under http/, and server-side
// sessions under session/. The farmstand binary in cmd/farmstand wires
// everything from configuration.
//
// Browser-side behavior of the original storefront (cart totals, catalog
// filtering, the gallery lightbox) is modeled here as plain state types with
// pure transition functions so it can be driven and tested without a DOM.
package farmstand
