package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryUpHasDown(t *testing.T) {
	ups, err := fs.Glob(files, "sql/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(files, down)
		assert.NoError(t, err, "missing %s", down)
	}
}

func TestSchemaCascadePolicy(t *testing.T) {
	raw, err := fs.ReadFile(files, "sql/000001_create_catalog_tables.up.sql")
	require.NoError(t, err)
	schema := string(raw)

	assert.Contains(t, schema, "REFERENCES product_types (id) ON DELETE RESTRICT")
	assert.Equal(t, 2, strings.Count(schema, "REFERENCES products (id) ON DELETE CASCADE"))
	assert.Contains(t, schema, "CONSTRAINT variants_sku_key UNIQUE (sku)")
	assert.Contains(t, schema, "CONSTRAINT product_types_name_key UNIQUE (name)")
}
