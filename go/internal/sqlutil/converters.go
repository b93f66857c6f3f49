package sqlutil

import (
	"database/sql"
	"encoding/json"

	"github.com/sqlc-dev/pqtype"
)

// Helper functions for converting between sql.Null* types and Go types

// FromSqlInt32 converts sql.NullInt32 to Go int pointer
func FromSqlInt32(val sql.NullInt32) *int {
	if !val.Valid {
		return nil
	}
	i := int(val.Int32)
	return &i
}

// FromSqlInt16 converts sql.NullInt16 to Go int
func FromSqlInt16(val sql.NullInt16) int {
	if !val.Valid {
		return 0
	}
	return int(val.Int16)
}

// FromSqlString converts sql.NullString to Go string with default
func FromSqlString(val sql.NullString, defaultVal string) string {
	if !val.Valid {
		return defaultVal
	}
	return val.String
}

// FromNullRawMessage decodes a nullable jsonb column into out.
// A NULL column leaves out untouched.
func FromNullRawMessage(val pqtype.NullRawMessage, out any) error {
	if !val.Valid || len(val.RawMessage) == 0 {
		return nil
	}
	return json.Unmarshal(val.RawMessage, out)
}
