package sqlutil

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullConverters(t *testing.T) {
	assert.Nil(t, FromSqlInt32(sql.NullInt32{}))
	assert.Equal(t, 7, *FromSqlInt32(sql.NullInt32{Int32: 7, Valid: true}))
	assert.Equal(t, 0, FromSqlInt16(sql.NullInt16{}))
	assert.Equal(t, "n/a", FromSqlString(sql.NullString{}, "n/a"))
	assert.Equal(t, "IOL", FromSqlString(sql.NullString{String: "IOL", Valid: true}, "n/a"))
}

func TestFromNullRawMessage(t *testing.T) {
	var extras struct {
		Hometown *string `json:"hometown"`
	}
	require.NoError(t, FromNullRawMessage(pqtype.NullRawMessage{}, &extras))
	assert.Nil(t, extras.Hometown)

	raw := pqtype.NullRawMessage{RawMessage: json.RawMessage(`{"hometown":"Tulsa, OK"}`), Valid: true}
	require.NoError(t, FromNullRawMessage(raw, &extras))
	require.NotNil(t, extras.Hometown)
	assert.Equal(t, "Tulsa, OK", *extras.Hometown)

	bad := pqtype.NullRawMessage{RawMessage: json.RawMessage(`{`), Valid: true}
	assert.Error(t, FromNullRawMessage(bad, &extras))
}
