package crosschain

import "errors"

// Adapter reverts.
var (
	ErrInvalidLength   = errors.New("InvalidLength")
	ErrInsufficientFee = errors.New("InsufficientFee")
	ErrExcessFee       = errors.New("ExcessFee")
	ErrInvalidHandler  = errors.New("InvalidHandler")
	ErrInvalidOrigin   = errors.New("InvalidOrigin")
)

// Factory reverts.
var (
	ErrInvalidSalt                  = errors.New("InvalidSalt")
	ErrFailedContractCreation       = errors.New("FailedContractCreation")
	ErrFailedContractInitialisation = errors.New("FailedContractInitialisation")
)

// Bridge and ledger reverts.
var (
	ErrIncorrectFeeSupplied = errors.New("IncorrectFeeSupplied")
	ErrResourceIDNotMapped  = errors.New("ResourceIDNotMappedToHandler")
	ErrSenderNotBridge      = errors.New("SenderMustBeBridgeContract")
	ErrIncorrectDepositor   = errors.New("IncorrectDepositor")
	ErrInvalidDepositData   = errors.New("invalid deposit data")
	ErrNonceUsed            = errors.New("deposit nonce already used")
	ErrDomainNotSupported   = errors.New("destination domain not supported")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrNoContract           = errors.New("no contract at address")
	ErrUnknownSelector      = errors.New("function selector was not recognized")
	// ErrFeeOverflow is the checked arithmetic panic raised when fees overflow uint256.
	ErrFeeOverflow = errors.New("arithmetic overflow")
)
