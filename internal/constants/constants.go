package constants

// Session and context keys
const (
	SessionCookieName = "cataloger_session"
	ContextKeyUserID  = "user_id"
	ContextKeyCard    = "card"
	ContextKeyUser    = "current_user"
)

// Validation limits
const (
	MinPasswordLength = 6
	MinUsernameLength = 3
	MaxUsernameLength = 25
	MinGroupNameLength = 3
	MaxGroupNameLength = 25
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DefinitionWordLimit caps how many words of an ontology term definition
// are shown in a suggestion label.
const DefinitionWordLimit = 20
