package sqlite_test

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivhu/farmstand"
	"github.com/ivhu/farmstand/database/sqlite"

	_ "modernc.org/sqlite" // SQLite driver
)

func getRandomString(t *testing.T) string {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	assert.NoError(t, err, "random string")
	return fmt.Sprintf("test%x", n.Int64())
}

// setupTestRepos creates repos over unique table names for test isolation
func setupTestRepos(t *testing.T) (*sqlite.ProductRepo, *sqlite.GalleryRepo) {
	t.Helper()

	ctx := context.Background()

	suffix := getRandomString(t)
	tables := farmstand.Tables{
		Products: fmt.Sprintf("products_%s", suffix),
		Gallery:  fmt.Sprintf("gallery_%s", suffix),
	}

	db, err := sql.Open("sqlite", ":memory:")
	assert.NoError(t, err, "failed to open database")
	t.Cleanup(func() { _ = db.Close() })

	err = sqlite.Migrate(ctx, db, tables)
	assert.NoError(t, err, "failed to migrate")

	err = sqlite.ValidateSchema(ctx, db, tables)
	assert.NoError(t, err, "schema validation failed")

	products, err := sqlite.NewProductRepo(db, tables)
	assert.NoError(t, err, "failed to create product repo")

	gallery, err := sqlite.NewGalleryRepo(db, tables)
	assert.NoError(t, err, "failed to create gallery repo")

	return products, gallery
}
