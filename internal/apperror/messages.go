package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	CodeConfigurationError: "Configuration error",

	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	CodeStaleSimulation:  "Staged trade changed while the simulation was running",
	CodeNoPendingCounter: "No counter-offer is pending",
	CodeTeamsNotSelected: "Both teams must be selected",
	CodeInvalidSide:      "Unknown trade side",

	CodeEvaluatorConnectionFailed: "Failed to reach the adversarial engine",
	CodeEvaluatorAPIError:         "Adversarial engine returned an error",
	CodeInvalidProposal:           "Invalid trade proposal",
	CodeInvalidCapHit:             "Cap hit cannot be negative",

	CodeRosterUnavailable: "Roster source unavailable",
	CodeTeamNotFound:      "Team not found",
	CodeAssetNotFound:     "Asset not found",
	CodeDuplicateAsset:    "Asset already exists",
	CodeSeedLoadFailed:    "Failed to load seed data",
	CodeScenarioNotFound:  "Scenario not found",

	CodeWebSocketConnectionError: "WebSocket connection error",
	CodeWebSocketClosed:          "WebSocket connection closed",
	CodeWebSocketSendError:       "Failed to send WebSocket message",

	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}
