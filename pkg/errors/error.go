package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"

	// TransportError represents an HTTP or file I/O failure while retrieving market data.
	TransportError ErrorCode = "transport_error"
	// UpstreamStatusError represents a non-2xx response from the market-data provider.
	UpstreamStatusError ErrorCode = "upstream_status_error"
	// DecodeError represents a failure to decode a provider payload.
	DecodeError ErrorCode = "decode_error"

	// ConfigError represents an invalid or incomplete configuration.
	ConfigError ErrorCode = "config_error"
	// ConsumerError represents a failure while consuming order feed messages.
	ConsumerError ErrorCode = "consumer_error"
)

// Category represents the category of an error.
type Category string

const (
	// CategoryNetwork indicates an error related to network operations.
	CategoryNetwork Category = "network"
	// CategoryValidation indicates an error related to validation of input data.
	CategoryValidation Category = "validation"
	// CategoryExternal indicates an error related to external services or APIs.
	CategoryExternal Category = "external"
	// CategoryUnknown indicates an unknown error category.
	CategoryUnknown Category = "unknown"
)
