package appointment

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The repositories bind *string fields directly, and database/sql sends a
// nil pointer as an explicit SQL NULL, which bypasses column defaults. The
// optional columns therefore must accept NULL or creates without notes or
// phone would hit a not-null violation.
func TestSchemaOptionalColumnsAreNullable(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	for _, column := range []string{"notes", "client_phone", "phone"} {
		re := regexp.MustCompile(`(?m)^\s*` + column + `\s+TEXT(.*)$`)
		matches := re.FindAllStringSubmatch(string(raw), -1)
		require.NotEmpty(t, matches, "column %s not found in schema", column)
		for _, m := range matches {
			assert.NotContains(t, m[1], "NOT NULL", "column %s must be nullable", column)
		}
	}
}
