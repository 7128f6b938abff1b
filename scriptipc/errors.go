package scriptipc

import (
	"errors"
	"fmt"
	"io"
)

// ErrorCode is the numeric failure code carried in a response frame.
// The values are part of the wire format and must not change.
type ErrorCode uint64

const (
	CodeOk ErrorCode = 0

	// Codes 1 through 9 mirror host syscall failures.
	CodeIndexOutOfBound ErrorCode = 1
	CodeItemMissing     ErrorCode = 2
	CodeLengthNotEnough ErrorCode = 3
	CodeInvalidData     ErrorCode = 4
	CodeWaitFailure     ErrorCode = 5
	CodeInvalidFd       ErrorCode = 6
	CodeOtherEndClosed  ErrorCode = 7
	CodeMaxVmsSpawned   ErrorCode = 8
	CodeMaxFdsCreated   ErrorCode = 9

	CodeUnknownError      ErrorCode = 20
	CodeUnknownSysError   ErrorCode = 21
	CodeUnexpectedEOF     ErrorCode = 22
	CodeIncompleteVlqSeq  ErrorCode = 23
	CodeDecodeVlqOverflow ErrorCode = 24
	CodeReadVlqError      ErrorCode = 25
	CodeSerializeError    ErrorCode = 26
	CodeDeserializeError  ErrorCode = 27
	CodeGeneralIOError    ErrorCode = 28
)

var codeNames = map[ErrorCode]string{
	CodeOk:                "ok",
	CodeIndexOutOfBound:   "index out of bound",
	CodeItemMissing:       "item missing",
	CodeLengthNotEnough:   "length not enough",
	CodeInvalidData:       "invalid data",
	CodeWaitFailure:       "wait failure",
	CodeInvalidFd:         "invalid fd",
	CodeOtherEndClosed:    "other end closed",
	CodeMaxVmsSpawned:     "max vms spawned",
	CodeMaxFdsCreated:     "max fds created",
	CodeUnknownError:      "unknown error",
	CodeUnknownSysError:   "unknown sys error",
	CodeUnexpectedEOF:     "unexpected eof",
	CodeIncompleteVlqSeq:  "incomplete vlq sequence",
	CodeDecodeVlqOverflow: "vlq overflow",
	CodeReadVlqError:      "vlq read error",
	CodeSerializeError:    "serialize error",
	CodeDeserializeError:  "deserialize error",
	CodeGeneralIOError:    "general io error",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("error code %d", uint64(c))
}

// IsSyscall reports whether c mirrors a host syscall failure.
func (c ErrorCode) IsSyscall() bool {
	return c >= CodeIndexOutOfBound && c <= CodeMaxFdsCreated
}

// Error is a local transport, framing or codec failure.
type Error struct {
	Code ErrorCode
	Op   string // operation that failed, e.g. "read request"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code. A target with CodeOk
// matches any *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == CodeOk || t.Code == e.Code
}

// ErrIPC is a sentinel for errors.Is matching any *Error.
var ErrIPC = &Error{}

var (
	ErrIncompleteVlq  = &Error{Code: CodeIncompleteVlqSeq}
	ErrVlqOverflow    = &Error{Code: CodeDecodeVlqOverflow}
	ErrReadVlq        = &Error{Code: CodeReadVlqError}
	ErrInvalidFd      = &Error{Code: CodeInvalidFd}
	ErrOtherEndClosed = &Error{Code: CodeOtherEndClosed}
	ErrSerialize      = &Error{Code: CodeSerializeError}
	ErrDeserialize    = &Error{Code: CodeDeserializeError}
	ErrUnexpectedEOF  = &Error{Code: CodeUnexpectedEOF}
	ErrGeneralIO      = &Error{Code: CodeGeneralIOError}
)

// ProtocolError is a nonzero error code returned by the peer.
type ProtocolError struct {
	Code ErrorCode
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("peer returned error code %d (%s)", uint64(e.Code), e.Code)
}

// Is matches another *ProtocolError with the same code. A target with
// CodeOk matches any *ProtocolError.
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return t.Code == CodeOk || t.Code == e.Code
}

// ErrProtocol is a sentinel for errors.Is matching any *ProtocolError.
var ErrProtocol = &ProtocolError{}

// CodeOf maps err to the code a server reports to its peer.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return CodeOk
	}
	var e *Error
	if errors.As(err, &e) && e.Code != CodeOk {
		return e.Code
	}
	var p *ProtocolError
	if errors.As(err, &p) {
		return p.Code
	}
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return CodeUnexpectedEOF
	case errors.Is(err, io.ErrShortWrite), errors.Is(err, io.ErrClosedPipe):
		return CodeGeneralIOError
	}
	return CodeUnknownError
}

// ioError tags err with CodeGeneralIOError unless it already carries a code.
func ioError(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Code: CodeGeneralIOError, Op: op, Err: err}
}
