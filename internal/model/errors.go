package model

// Code is a machine-readable error code of a rejected sheet mutation.
type Code string

const (
	CodeRankCapExceeded    Code = "RANK_CAP_EXCEEDED"
	CodeRankFloorReached   Code = "RANK_FLOOR_REACHED"
	CodeInsufficientPoints Code = "INSUFFICIENT_POINTS"
	CodeDataInconsistency  Code = "DATA_INCONSISTENCY"
	CodeInvalidValue       Code = "INVALID_VALUE"
)

// Error is a rejected mutation. Nothing was applied when it is returned.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable reason
	Metadata map[string]string // Ids and amounts involved
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrRankCapExceeded    = &Error{Code: CodeRankCapExceeded, Message: "no more ranks can be bought this level"}
	ErrRankFloorReached   = &Error{Code: CodeRankFloorReached, Message: "no ranks bought this level to remove"}
	ErrInsufficientPoints = &Error{Code: CodeInsufficientPoints, Message: "not enough development points"}
	ErrDataInconsistency  = &Error{Code: CodeDataInconsistency, Message: "rule tables are inconsistent"}
	ErrInvalidValue       = &Error{Code: CodeInvalidValue, Message: "invalid value"}
)

func newError(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}
