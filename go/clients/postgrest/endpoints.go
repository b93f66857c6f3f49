package postgrest

const (
	// API root under the project URL
	RestPath = "/rest/v1"

	// Tables
	PlayersTable    = "players"
	DraftOrderTable = "draft_order"

	// Headers
	APIKeyHeader        = "apikey"
	AuthorizationHeader = "Authorization"
	AcceptHeader        = "Accept"
	JSONContentType     = "application/json"
)
