package errors

import "fmt"

// ERR is the numeric error code carried by every *Error.
type ERR int32

const (
	ERR_UNKNOWN            ERR = 0
	ERR_INVALID_ARGUMENT   ERR = 1
	ERR_THRESHOLD_EXCEEDED ERR = 2
	ERR_NOT_FOUND          ERR = 3
	ERR_PROCESSING         ERR = 4
	ERR_CONFIGURATION      ERR = 5
	ERR_ERROR              ERR = 9

	// transaction validation
	ERR_TX_INVALID            ERR = 30
	ERR_TX_MISSING_INPUT      ERR = 31
	ERR_TX_INVALID_SIGNATURE  ERR = 32
	ERR_TX_DUPLICATE_INPUT    ERR = 33
	ERR_TX_NEGATIVE_OUTPUT    ERR = 34
	ERR_TX_INSUFFICIENT_INPUT ERR = 35
	ERR_TX_CONFLICTING        ERR = 36
)

var ERR_name = map[ERR]string{
	ERR_UNKNOWN:               "UNKNOWN",
	ERR_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ERR_THRESHOLD_EXCEEDED:    "THRESHOLD_EXCEEDED",
	ERR_NOT_FOUND:             "NOT_FOUND",
	ERR_PROCESSING:            "PROCESSING",
	ERR_CONFIGURATION:         "CONFIGURATION",
	ERR_ERROR:                 "ERROR",
	ERR_TX_INVALID:            "TX_INVALID",
	ERR_TX_MISSING_INPUT:      "TX_MISSING_INPUT",
	ERR_TX_INVALID_SIGNATURE:  "TX_INVALID_SIGNATURE",
	ERR_TX_DUPLICATE_INPUT:    "TX_DUPLICATE_INPUT",
	ERR_TX_NEGATIVE_OUTPUT:    "TX_NEGATIVE_OUTPUT",
	ERR_TX_INSUFFICIENT_INPUT: "TX_INSUFFICIENT_INPUT",
	ERR_TX_CONFLICTING:        "TX_CONFLICTING",
}

func (c ERR) String() string {
	if name, ok := ERR_name[c]; ok {
		return name
	}

	return fmt.Sprintf("ERR(%d)", int32(c))
}

func (c ERR) IsValid() bool {
	_, ok := ERR_name[c]
	return ok
}
