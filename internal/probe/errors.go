package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of a per-address failure
type ErrorType int

const (
	// ErrTypeConnect indicates the TCP reachability check failed
	ErrTypeConnect ErrorType = iota
	// ErrTypeTimeout indicates no probe succeeded before the race deadline
	ErrTypeTimeout
	// ErrTypeProtocolMismatch indicates a response without the expected fields,
	// an unexpected status code, malformed JSON or a failed request
	ErrTypeProtocolMismatch
	// ErrTypeMalformedAddress indicates the reported hardware address did not decode
	ErrTypeMalformedAddress
	// ErrTypeCanceled indicates the scan was stopped before the race resolved
	ErrTypeCanceled
)

// ConnectSubtype gives a more specific reason for ErrTypeConnect
type ConnectSubtype int

const (
	ConnectGeneral ConnectSubtype = iota
	ConnectTimeout
	ConnectRefused
	ConnectHostUnreachable
	ConnectNetworkUnreachable
	ConnectCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConnect:
		return "Connect Error"
	case ErrTypeTimeout:
		return "Probe Timeout"
	case ErrTypeProtocolMismatch:
		return "Protocol Mismatch"
	case ErrTypeMalformedAddress:
		return "Malformed Hardware Address"
	case ErrTypeCanceled:
		return "Probe Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ScanError describes why an address produced no detection
type ScanError struct {
	Type    ErrorType      // Category of error
	Message string         // Human-readable error message
	Addr    netip.Addr     // Address being probed
	Gateway GatewayType    // Prober that failed (zero for reachability and race errors)
	Subtype ConnectSubtype // Connect failure detail
	Err     error          // Underlying error (if any)
}

// Error implements the error interface
func (e *ScanError) Error() string {
	prefix := e.Type.String()
	if e.Gateway != 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, e.Gateway)
	}
	if e.Addr.IsValid() {
		prefix = fmt.Sprintf("%s %s", prefix, e.Addr)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ScanError) Unwrap() error {
	return e.Err
}

// ClassifyDialError turns a failed TCP connect into a connect error with a subtype
func ClassifyDialError(err error, addr netip.Addr) *ScanError {
	if err == nil {
		return nil
	}

	scanErr := &ScanError{
		Type:    ErrTypeConnect,
		Message: "Host not reachable",
		Addr:    addr,
		Subtype: ConnectGeneral,
		Err:     err,
	}

	switch {
	case errors.Is(err, context.Canceled):
		scanErr.Message = "Connect canceled"
		scanErr.Subtype = ConnectCanceled
	case os.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		scanErr.Message = "Connect timed out"
		scanErr.Subtype = ConnectTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		scanErr.Message = "Connection refused"
		scanErr.Subtype = ConnectRefused
	case errors.Is(err, syscall.EHOSTUNREACH):
		scanErr.Message = "Host unreachable"
		scanErr.Subtype = ConnectHostUnreachable
	case errors.Is(err, syscall.ENETUNREACH):
		scanErr.Message = "Network unreachable"
		scanErr.Subtype = ConnectNetworkUnreachable
	}

	return scanErr
}

// NewTimeoutError creates the error for a race that hit its deadline
func NewTimeoutError(addr netip.Addr, err error) *ScanError {
	return &ScanError{
		Type:    ErrTypeTimeout,
		Message: "Timeout trying to get gateway response",
		Addr:    addr,
		Err:     err,
	}
}

// NewCanceledError creates the error for a race abandoned because its parent
// context was cancelled
func NewCanceledError(addr netip.Addr, err error) *ScanError {
	return &ScanError{
		Type:    ErrTypeCanceled,
		Message: "Scan canceled before a gateway responded",
		Addr:    addr,
		Err:     err,
	}
}

// NewMismatchError creates a protocol mismatch error for a prober
func NewMismatchError(g GatewayType, addr netip.Addr, message string, err error) *ScanError {
	return &ScanError{
		Type:    ErrTypeProtocolMismatch,
		Message: message,
		Addr:    addr,
		Gateway: g,
		Err:     err,
	}
}

// newRequestError wraps a transport failure of an HTTP probe
func newRequestError(g GatewayType, addr netip.Addr, err error) *ScanError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	var opErr *net.OpError
	message := "Request failed"
	if errors.As(err, &opErr) {
		message = fmt.Sprintf("Request failed during %s", opErr.Op)
	}
	return NewMismatchError(g, addr, message, err)
}

// NewMalformedAddressError creates the error for an undecodable hardware address
func NewMalformedAddressError(g GatewayType, addr netip.Addr, err error) *ScanError {
	return &ScanError{
		Type:    ErrTypeMalformedAddress,
		Message: "Error parsing mac address from response",
		Addr:    addr,
		Gateway: g,
		Err:     err,
	}
}

func asScanError(err error) (*ScanError, bool) {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr, true
	}
	return nil, false
}

// IsConnectError checks if an error is a reachability failure
func IsConnectError(err error) bool {
	if scanErr, ok := asScanError(err); ok {
		return scanErr.Type == ErrTypeConnect
	}
	return false
}

// IsTimeout checks if an error is a race deadline failure
func IsTimeout(err error) bool {
	if scanErr, ok := asScanError(err); ok {
		return scanErr.Type == ErrTypeTimeout
	}
	return false
}

// IsCanceled checks if an error is a race stopped by cancellation
func IsCanceled(err error) bool {
	if scanErr, ok := asScanError(err); ok {
		return scanErr.Type == ErrTypeCanceled
	}
	return false
}

// IsProtocolMismatch checks if an error is a protocol mismatch.
// Malformed hardware addresses belong to this class.
func IsProtocolMismatch(err error) bool {
	if scanErr, ok := asScanError(err); ok {
		return scanErr.Type == ErrTypeProtocolMismatch ||
			scanErr.Type == ErrTypeMalformedAddress
	}
	return false
}

// Stage returns the pipeline stage an error came from, for logging
func Stage(err error) string {
	scanErr, ok := asScanError(err)
	if !ok {
		return "unknown"
	}
	switch scanErr.Type {
	case ErrTypeConnect:
		return "reachability"
	case ErrTypeTimeout, ErrTypeCanceled:
		return "race"
	default:
		return "probe"
	}
}

// ShortMessage returns a concise description of an error
func ShortMessage(err error) string {
	scanErr, ok := asScanError(err)
	if !ok {
		return err.Error()
	}

	switch scanErr.Type {
	case ErrTypeConnect:
		switch scanErr.Subtype {
		case ConnectRefused:
			return "connection refused"
		case ConnectTimeout:
			return "connect timed out"
		case ConnectHostUnreachable:
			return "host unreachable"
		case ConnectNetworkUnreachable:
			return "network unreachable"
		case ConnectCanceled:
			return "connect canceled"
		default:
			return "not reachable"
		}
	case ErrTypeTimeout:
		return "no gateway response before deadline"
	case ErrTypeCanceled:
		return "scan canceled"
	case ErrTypeMalformedAddress:
		return "malformed mac address"
	default:
		return scanErr.Message
	}
}
