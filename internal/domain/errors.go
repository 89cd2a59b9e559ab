package domain

import "errors"

// Sentinel errors for catalog operations
var (
	// ErrNetwork indicates a transport failure, non-2xx status, or timeout
	ErrNetwork = errors.New("cocktail catalog is unreachable")

	// ErrProtocol indicates a response body that could not be understood
	ErrProtocol = errors.New("unexpected cocktail catalog response")

	// ErrNotFound indicates the requested cocktail does not exist
	ErrNotFound = errors.New("cocktail not found")

	// ErrInvalidArgument indicates a request that was rejected before being sent
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrorKind classifies errors for display
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindProtocol
	KindNotFound
	KindInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "NetworkError"
	case KindProtocol:
		return "ProtocolError"
	case KindNotFound:
		return "NotFound"
	case KindInvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// KindOf maps an error to its ErrorKind
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrProtocol):
		return KindProtocol
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	default:
		return KindUnknown
	}
}
