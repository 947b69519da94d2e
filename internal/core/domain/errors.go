package domain

import "errors"

// ============================================================================
// Document Errors
// ============================================================================

// Not found errors
var (
	ErrDocumentNotFound = errors.New("document not found")
)

// Validation errors
var (
	ErrInvalidFileType     = errors.New("file type not allowed: only pdf, docx, txt, md are accepted")
	ErrEmptyFile           = errors.New("uploaded file is empty")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrInvalidFilename     = errors.New("filename is required")
	ErrInvalidStatusFilter = errors.New("invalid document status filter")
	ErrUnsupportedDocument = errors.New("document type is not supported")
)

// ============================================================================
// LLM Provider Errors
// ============================================================================

// Not found errors
var (
	ErrProviderNotFound = errors.New("llm provider not found")
)

// Validation errors
var (
	ErrInvalidProviderType = errors.New("invalid provider type")
	ErrInvalidModelName    = errors.New("model name is required")
	ErrMissingAPIKey       = errors.New("api key is required")
	ErrMissingBaseURL      = errors.New("base url is required for this provider type")
	ErrNegativeLatency     = errors.New("latency must be >= 0")
)

// Conflict errors
var (
	ErrDuplicateProvider = errors.New("provider with this type and model already exists for the user")
)

// Business rule errors
var (
	ErrNoActiveProvider     = errors.New("no active llm provider configured for the user")
	ErrProviderTestFailed   = errors.New("provider connection test failed")
	ErrProviderKeyCorrupted = errors.New("stored provider api key cannot be decrypted")
)

// ============================================================================
// Graph Errors
// ============================================================================

var (
	ErrInvalidNodeType    = errors.New("invalid node type")
	ErrInvalidMaxNodes    = errors.New("max_nodes must be between 1 and 100")
	ErrInvalidMaxDepth    = errors.New("max_depth must be between 1 and 5")
	ErrGraphUnavailable   = errors.New("knowledge graph store is unavailable")
	ErrGraphNodeNotFound  = errors.New("document has no graph node")
	ErrGraphQueryRejected = errors.New("graph query rejected")
)

// ============================================================================
// User / Auth Errors
// ============================================================================

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUnauthenticated = errors.New("missing or invalid credentials")
	ErrForbidden       = errors.New("access to this resource is forbidden")
)

// ============================================================================
// Request Handling Errors
// ============================================================================

var (
	ErrDuplicateRequest = errors.New("duplicate request in progress")
	ErrRateLimited      = errors.New("rate limit exceeded")
)
