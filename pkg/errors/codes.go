package errors

import "net/http"

// ErrorCode is the typed, module-prefixed identifier of a failure category.
// Codes are stable strings so they can be logged, returned in API responses,
// and used as metric labels without leaking internal details.
type ErrorCode string

// String returns the code as a plain string.
func (c ErrorCode) String() string { return string(c) }

// ─────────────────────────────────────────────────────────────────────────────
// Common codes (cross-cutting)
// ─────────────────────────────────────────────────────────────────────────────

const (
	CodeOK ErrorCode = "OK"

	CodeInternal           ErrorCode = "COMMON_001"
	CodeInvalidParam       ErrorCode = "COMMON_002"
	CodeUnauthorized       ErrorCode = "COMMON_003"
	CodeForbidden          ErrorCode = "COMMON_004"
	CodeNotFound           ErrorCode = "COMMON_005"
	CodeConflict           ErrorCode = "COMMON_006"
	CodeRateLimit          ErrorCode = "COMMON_007"
	CodeServiceUnavailable ErrorCode = "COMMON_008"
	CodeTimeout            ErrorCode = "COMMON_009"
	CodeValidation         ErrorCode = "COMMON_010"
	CodeSerialization      ErrorCode = "COMMON_011"
	CodeDatabaseError      ErrorCode = "COMMON_012"
	CodeCacheError         ErrorCode = "COMMON_013"
	CodeExternalService    ErrorCode = "COMMON_014"
	CodeNotImplemented     ErrorCode = "COMMON_015"

	CodeUnknown ErrorCode = "COMMON_999"
)

// ─────────────────────────────────────────────────────────────────────────────
// Document module codes
// ─────────────────────────────────────────────────────────────────────────────

const (
	CodeDocumentNotFound         ErrorCode = "DOC_001"
	CodeDocumentStorageFailed    ErrorCode = "DOC_002"
	CodeDocumentNoExtractedText  ErrorCode = "DOC_003"
	CodeDocumentUnsupportedType  ErrorCode = "DOC_004"
	CodeDocumentExtractionFailed ErrorCode = "DOC_005"
)

// ─────────────────────────────────────────────────────────────────────────────
// AI gateway codes
// ─────────────────────────────────────────────────────────────────────────────

const (
	CodeAIRequestFailed    ErrorCode = "AI_001"
	CodeAIMalformedOutput  ErrorCode = "AI_002"
	CodeAIProviderDisabled ErrorCode = "AI_003"
)

// ─────────────────────────────────────────────────────────────────────────────
// Market data codes
// ─────────────────────────────────────────────────────────────────────────────

const (
	CodeMarketLookupFailed ErrorCode = "MARKET_001"
)

// ─────────────────────────────────────────────────────────────────────────────
// Analysis pipeline codes
// ─────────────────────────────────────────────────────────────────────────────

const (
	CodeAnalysisNotFound          ErrorCode = "ANALYSIS_001"
	CodeAnalysisNoDocuments       ErrorCode = "ANALYSIS_002"
	CodeAnalysisNoText            ErrorCode = "ANALYSIS_003"
	CodeAnalysisAlreadyComplete   ErrorCode = "ANALYSIS_004"
	CodeAnalysisInvalidTransition ErrorCode = "ANALYSIS_005"
)

// HTTPStatusForCode maps an ErrorCode to the HTTP status an API handler should
// return. Unknown codes map to 500.
func HTTPStatusForCode(code ErrorCode) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidParam, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeDocumentNotFound, CodeAnalysisNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeAnalysisAlreadyComplete, CodeAnalysisInvalidTransition:
		return http.StatusConflict
	case CodeDocumentUnsupportedType:
		return http.StatusUnsupportedMediaType
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable, CodeExternalService:
		return http.StatusServiceUnavailable
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeNotImplemented:
		return http.StatusNotImplemented
	case CodeAnalysisNoDocuments, CodeAnalysisNoText:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the code maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	s := HTTPStatusForCode(code)
	return s >= 400 && s < 500
}

// IsServerError reports whether the code maps to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	return HTTPStatusForCode(code) >= 500
}
