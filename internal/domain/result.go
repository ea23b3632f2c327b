package domain

// Result is the uniform envelope returned by every operation, success or
// failure. Data holds operation-specific fields; on failure it carries
// remediation hints under "suggestions" rather than raw error dumps.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// OK builds a success envelope.
func OK(message string, data map[string]any) Result {
	if data == nil {
		data = map[string]any{}
	}
	return Result{Success: true, Message: message, Data: data}
}

// ResultFromError converts any error into a failure envelope. Typed
// failures keep their kind and suggestions; anything else is reported with
// its message only.
func ResultFromError(err error) Result {
	if f, ok := AsFailure(err); ok {
		return f.Result()
	}
	return Result{
		Success: false,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}
