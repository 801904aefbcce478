package gallery

import (
	goerrors "errors"

	"github.com/status-im/arcadia/errors"
)

// Abbreviation `GAL` for the error code stands for Gallery
var (
	ErrProviderAbsent     = &errors.ErrorResponse{Code: errors.ErrorCode("GAL-001"), Details: "wallet not found, install a wallet to use the gallery"}
	ErrConnectionDenied   = &errors.ErrorResponse{Code: errors.ErrorCode("GAL-002"), Details: "wallet connection denied"}
	ErrStoreUninitialized = &errors.ErrorResponse{Code: errors.ErrorCode("GAL-003"), Details: "gallery account is not initialized"}
	ErrStoreCallFailure   = &errors.ErrorResponse{Code: errors.ErrorCode("GAL-004"), Details: "gallery store call failed"}
	ErrNotConnected       = &errors.ErrorResponse{Code: errors.ErrorCode("GAL-005"), Details: "wallet is not connected"}
	ErrEmptyDraft         = &errors.ErrorResponse{Code: errors.ErrorCode("GAL-006"), Details: "no gif link given"}
	ErrStoreNotReady      = &errors.ErrorResponse{Code: errors.ErrorCode("GAL-007"), Details: "gallery account must be initialized first"}
	ErrAlreadyInitialized = &errors.ErrorResponse{Code: errors.ErrorCode("GAL-008"), Details: "gallery account is already initialized"}
	ErrAlreadyConnected   = &errors.ErrorResponse{Code: errors.ErrorCode("GAL-009"), Details: "wallet is already connected"}
)

// IsRejection reports errors for actions refused before any wallet or store
// call. Only these are shown to the user; denied connections and failed
// store calls are logged and leave the view as it was.
func IsRejection(err error) bool {
	if goerrors.Is(err, ErrStoreCallFailure) {
		return false
	}
	return goerrors.Is(err, ErrEmptyDraft) ||
		goerrors.Is(err, ErrNotConnected) ||
		goerrors.Is(err, ErrStoreNotReady) ||
		goerrors.Is(err, ErrAlreadyInitialized)
}
