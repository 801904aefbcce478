package gif

import (
	"github.com/status-im/arcadia/errors"
)

// Abbreviation `GST` for the error code stands for Gif Store
var (
	ErrInvalidAccountData  = &errors.ErrorResponse{Code: errors.ErrorCode("GST-001"), Details: "gallery account data is malformed"}
	ErrWrongAccountOwner   = &errors.ErrorResponse{Code: errors.ErrorCode("GST-002"), Details: "gallery account is not owned by the gif program"}
	ErrMissingBaseKeypair  = &errors.ErrorResponse{Code: errors.ErrorCode("GST-003"), Details: "gallery account keypair is required to initialize"}
	ErrBaseAccountMismatch = &errors.ErrorResponse{Code: errors.ErrorCode("GST-004"), Details: "gallery account keypair does not match the account"}
)
