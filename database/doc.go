// Package database provides a unified entry point for the relational store
// behind the storefront: the products and gallery tables.
//
// Two backends are supported. SQLite (modernc.org/sqlite) is the default and
// suits local development; PostgreSQL (pgx) is the production store. Connect
// opens the configured backend, runs migrations, validates the schema, and
// returns ready-to-use repos together with a cleanup function:
//
//	cfg := database.Config{
//	    Type:   "sqlite",
//	    DSN:    "data/farmstand.db",
//	    Tables: farmstand.Tables{Products: "products", Gallery: "gallery"},
//	}
//
//	repos, cleanup, err := database.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
package database
