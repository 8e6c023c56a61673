package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig       = fmt.Errorf("configuration not found")
	ErrInvalidConfig       = fmt.Errorf("invalid configuration")
	ErrMissingClientSecret = fmt.Errorf("client secret file not found")
	ErrInvalidClientSecret = fmt.Errorf("invalid client secret file")

	// Authentication errors
	ErrAuthFailed    = fmt.Errorf("authentication failed")
	ErrNoCredential  = fmt.Errorf("no stored credential")
	ErrRefreshFailed = fmt.Errorf("token refresh failed")
	ErrInvalidState  = fmt.Errorf("invalid state parameter")
	ErrTimeout       = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrVideoNotFound      = fmt.Errorf("video not found")

	// Persistence errors
	ErrExportNotFound = fmt.Errorf("export not found")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInputCancelled  = fmt.Errorf("input cancelled")
)
