package translator

import (
	"errors"
	"fmt"
	"strings"

	"lingosub/internal/services"
)

// ErrorKind classifies translation service failures.
type ErrorKind int

const (
	// KindCredentialMissing means no API key was configured.
	KindCredentialMissing ErrorKind = iota + 1
	// KindTransportFailure covers network errors and timeouts.
	KindTransportFailure
	// KindNonSuccessStatus means the provider answered with a non-2xx status.
	KindNonSuccessStatus
	// KindUnexpectedResponseShape means the reply carried no usable content.
	KindUnexpectedResponseShape
)

// Sentinels matched by ServiceError.Is for the corresponding kind.
var (
	ErrCredentialMissing       = errors.New("credential missing")
	ErrTransportFailure        = errors.New("transport failure")
	ErrNonSuccessStatus        = errors.New("non-success status")
	ErrUnexpectedResponseShape = errors.New("unexpected response shape")
)

func (k ErrorKind) String() string {
	switch k {
	case KindCredentialMissing:
		return "credential missing"
	case KindTransportFailure:
		return "transport failure"
	case KindNonSuccessStatus:
		return "non-success status"
	case KindUnexpectedResponseShape:
		return "unexpected response shape"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindCredentialMissing:
		return ErrCredentialMissing
	case KindTransportFailure:
		return ErrTransportFailure
	case KindNonSuccessStatus:
		return ErrNonSuccessStatus
	case KindUnexpectedResponseShape:
		return ErrUnexpectedResponseShape
	default:
		return nil
	}
}

// ServiceError reports a failed translation request. It matches the sentinel
// for its Kind and the shared services markers via errors.Is.
type ServiceError struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (http %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	if target == nil {
		return false
	}
	if target == e.Kind.sentinel() {
		return true
	}
	switch target {
	case services.ErrConfiguration:
		return e.Kind == KindCredentialMissing
	case services.ErrExternalTool:
		return e.Kind != KindCredentialMissing
	case services.ErrTransient:
		return e.Kind == KindTransportFailure || retryableStatus(e.StatusCode)
	}
	return false
}
