package errors

var (
	ErrUnknown             = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument     = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrThresholdExceeded   = New(ERR_THRESHOLD_EXCEEDED, "threshold exceeded")
	ErrNotFound            = New(ERR_NOT_FOUND, "not found")
	ErrProcessing          = New(ERR_PROCESSING, "error processing")
	ErrConfiguration       = New(ERR_CONFIGURATION, "configuration error")
	ErrError               = New(ERR_ERROR, "generic error")
	ErrTxInvalid           = New(ERR_TX_INVALID, "tx invalid")
	ErrTxMissingInput      = New(ERR_TX_MISSING_INPUT, "tx input not in utxo set")
	ErrTxInvalidSignature  = New(ERR_TX_INVALID_SIGNATURE, "tx input signature invalid")
	ErrTxDuplicateInput    = New(ERR_TX_DUPLICATE_INPUT, "tx spends the same output twice")
	ErrTxNegativeOutput    = New(ERR_TX_NEGATIVE_OUTPUT, "tx output value negative")
	ErrTxInsufficientInput = New(ERR_TX_INSUFFICIENT_INPUT, "tx outputs exceed inputs")
	ErrTxConflicting       = New(ERR_TX_CONFLICTING, "tx conflicts with an accepted tx")
)

// errors initialization functions

func NewUnknownError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN, message, params...)
}
func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewThresholdExceededError(message string, params ...interface{}) error {
	return New(ERR_THRESHOLD_EXCEEDED, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewError(message string, params ...interface{}) error {
	return New(ERR_ERROR, message, params...)
}
func NewTxInvalidError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID, message, params...)
}
func NewTxMissingInputError(message string, params ...interface{}) error {
	return New(ERR_TX_MISSING_INPUT, message, params...)
}
func NewTxInvalidSignatureError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID_SIGNATURE, message, params...)
}
func NewTxDuplicateInputError(message string, params ...interface{}) error {
	return New(ERR_TX_DUPLICATE_INPUT, message, params...)
}
func NewTxNegativeOutputError(message string, params ...interface{}) error {
	return New(ERR_TX_NEGATIVE_OUTPUT, message, params...)
}
func NewTxInsufficientInputError(message string, params ...interface{}) error {
	return New(ERR_TX_INSUFFICIENT_INPUT, message, params...)
}
func NewTxConflictingError(message string, params ...interface{}) error {
	return New(ERR_TX_CONFLICTING, message, params...)
}
