// internal/database/connection_test.go
package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaIndexesEnforceSinglePurchasePerAsset(t *testing.T) {
	var ddl string
	for _, index := range schemaIndexes {
		if strings.Contains(index, "ON purchase_transactions(user_id, global_asset_id)") {
			ddl = index
			break
		}
	}

	require.NotEmpty(t, ddl, "expected an index on purchase_transactions(user_id, global_asset_id)")
	assert.Contains(t, ddl, "CREATE UNIQUE INDEX",
		"a plain index would let the same user buy the same card twice")
}

func TestSchemaIndexesAreIdempotent(t *testing.T) {
	for _, index := range schemaIndexes {
		assert.Contains(t, index, "IF NOT EXISTS", index)
	}
}
