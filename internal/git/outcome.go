package git

// OperationOutcome is the result of one mutating operation. Exactly one of
// Message (on success) or Error (on failure) is set.
type OperationOutcome struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
	Kind    ErrorType `json:"errorKind,omitempty"`
}

func succeeded(message string) OperationOutcome {
	return OperationOutcome{Success: true, Message: message}
}

func failed(kind ErrorType, message string) OperationOutcome {
	if kind == ErrorTypeNone {
		kind = ErrorTypeUnknown
	}
	return OperationOutcome{Error: message, Kind: kind}
}
