package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Trade engine error codes
const (
	// Staging
	CodeStaleSimulation  Code = "STALE_SIMULATION"
	CodeNoPendingCounter Code = "NO_PENDING_COUNTER"
	CodeTeamsNotSelected Code = "TEAMS_NOT_SELECTED"
	CodeInvalidSide      Code = "INVALID_SIDE"

	// Adversarial evaluator
	CodeEvaluatorConnectionFailed Code = "EVALUATOR_CONNECTION_FAILED"
	CodeEvaluatorAPIError         Code = "EVALUATOR_API_ERROR"
	CodeInvalidProposal           Code = "INVALID_PROPOSAL"
	CodeInvalidCapHit             Code = "INVALID_CAP_HIT"

	// Roster
	CodeRosterUnavailable Code = "ROSTER_UNAVAILABLE"
	CodeTeamNotFound      Code = "TEAM_NOT_FOUND"
	CodeAssetNotFound     Code = "ASSET_NOT_FOUND"
	CodeDuplicateAsset    Code = "DUPLICATE_ASSET"
	CodeSeedLoadFailed    Code = "SEED_LOAD_FAILED"
	CodeScenarioNotFound  Code = "SCENARIO_NOT_FOUND"

	// Intel stream
	CodeWebSocketConnectionError Code = "WEBSOCKET_CONNECTION_ERROR"
	CodeWebSocketClosed          Code = "WEBSOCKET_CLOSED"
	CodeWebSocketSendError       Code = "WEBSOCKET_SEND_ERROR"

	// Circuit breaker
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)
