package constants

// Error messages used throughout the API handlers
const (
	// Request errors
	InvalidRequestBody    = "Invalid request body"
	InvalidAccountAddress = "Invalid account address"
	InvalidMarketAddress  = "Invalid market address"
	InvalidNonce          = "Invalid nonce"
	InvalidHash           = "Invalid hash"
	InvalidLimit          = "Invalid limit parameter"
	SignedRequestRequired = "Signed request required"

	// Not found errors
	MarketNotFound = "Market not found"
	RouteNotFound  = "Route not found"

	InternalServerError = "Internal server error"
)
