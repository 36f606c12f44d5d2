package errors

import (
	"minichain/jsonx"
)

// LedgerErrorCode represents standardized error codes for ledger operations
type LedgerErrorCode string

const (
	// General errors
	ErrCodeInternal LedgerErrorCode = "internal_error"

	// Hash service errors
	ErrCodeHashServiceUnavailable = "hash_service_unavailable"

	// Mining errors
	ErrCodeEmptyPayload    = "empty_payload"
	ErrCodeMiningTimeout   = "mining_timeout"
	ErrCodeMiningCancelled = "mining_cancelled"
	ErrCodeMinerBusy       = "miner_busy"

	// Chain errors
	ErrCodeChainDisconnected = "chain_disconnected"

	// Validation errors
	ErrCodeValidationFailed = "validation_failed"
)

// ValidationCheck identifies which check a block failed
type ValidationCheck string

const (
	CheckLinkage      ValidationCheck = "linkage"
	CheckProofOfWork  ValidationCheck = "proof_of_work"
	CheckHashMismatch ValidationCheck = "hash_mismatch"
)

// Error message constants - user-friendly and concise
const (
	ErrMsgHashServiceUnavailable = "Hash service could not be reached"
	ErrMsgEmptyPayload           = "Payload must not be empty"
	ErrMsgMinerBusy              = "A mining session is already in progress"
	ErrMsgChainDisconnected      = "Candidate block does not link to the current tip"
	ErrMsgInternal               = "Internal error, please try again"
)

// LedgerError represents a standardized ledger error
type LedgerError struct {
	Code    LedgerErrorCode `json:"code"`
	Message string          `json:"message"`
}

// Error implements the error interface
func (e *LedgerError) Error() string {
	err, _ := jsonx.Marshal(e)
	return string(err)
}

// MiningError reports a failed mining session together with the work it
// consumed before giving up
type MiningError struct {
	Code           LedgerErrorCode `json:"code"`
	Message        string          `json:"message"`
	Attempts       uint64          `json:"attempts"`
	ElapsedSeconds float64         `json:"elapsed_seconds"`
}

func (e *MiningError) Error() string {
	err, _ := jsonx.Marshal(e)
	return string(err)
}

// ChainError is returned by append when a candidate does not extend the tip
type ChainError struct {
	Code    LedgerErrorCode `json:"code"`
	Message string          `json:"message"`
}

func (e *ChainError) Error() string {
	err, _ := jsonx.Marshal(e)
	return string(err)
}

// ValidationError carries the failing block index and which check failed
type ValidationError struct {
	Index   uint64          `json:"index"`
	Check   ValidationCheck `json:"check"`
	Message string          `json:"message"`
}

func (e *ValidationError) Error() string {
	err, _ := jsonx.Marshal(e)
	return string(err)
}

// NewError creates a new LedgerError and returns it as error interface
func NewError(code LedgerErrorCode, message string) error {
	return &LedgerError{
		Code:    code,
		Message: message,
	}
}

func NewHashServiceUnavailable(detail string) error {
	msg := ErrMsgHashServiceUnavailable
	if detail != "" {
		msg = msg + ": " + detail
	}
	return &LedgerError{Code: ErrCodeHashServiceUnavailable, Message: msg}
}

func NewEmptyPayload() error {
	return &LedgerError{Code: ErrCodeEmptyPayload, Message: ErrMsgEmptyPayload}
}

func NewMinerBusy() error {
	return &LedgerError{Code: ErrCodeMinerBusy, Message: ErrMsgMinerBusy}
}

func NewMiningTimeout(attempts uint64, elapsedSeconds float64) error {
	return &MiningError{
		Code:           ErrCodeMiningTimeout,
		Message:        "Attempt ceiling reached before a valid nonce was found",
		Attempts:       attempts,
		ElapsedSeconds: elapsedSeconds,
	}
}

func NewMiningCancelled(attempts uint64, elapsedSeconds float64) error {
	return &MiningError{
		Code:           ErrCodeMiningCancelled,
		Message:        "Mining session cancelled by caller",
		Attempts:       attempts,
		ElapsedSeconds: elapsedSeconds,
	}
}

func NewChainDisconnected(detail string) error {
	msg := ErrMsgChainDisconnected
	if detail != "" {
		msg = msg + ": " + detail
	}
	return &ChainError{Code: ErrCodeChainDisconnected, Message: msg}
}

func NewValidationError(index uint64, check ValidationCheck, message string) error {
	return &ValidationError{Index: index, Check: check, Message: message}
}

// CodeOf extracts the ledger error code from any of the typed errors above,
// or ErrCodeInternal for foreign errors
func CodeOf(err error) LedgerErrorCode {
	switch e := err.(type) {
	case *LedgerError:
		return e.Code
	case *MiningError:
		return e.Code
	case *ChainError:
		return e.Code
	case *ValidationError:
		return ErrCodeValidationFailed
	}
	return ErrCodeInternal
}
