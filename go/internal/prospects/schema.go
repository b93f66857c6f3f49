package prospects

import _ "embed"

// Schema creates the players and draft_order tables for local development
//
//go:embed schema.sql
var Schema string
