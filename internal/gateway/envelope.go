package gateway

// Page is the paginated result block inside a list envelope
type Page[T any] struct {
	Result       []T  `json:"result"`
	TotalCount   int  `json:"total_count"`
	CurrentCount int  `json:"current_count"`
	Next         bool `json:"next"`
	TotalPages   int  `json:"total_pages"`
	CurrentPage  int  `json:"current_page"`
}

// ListEnvelope wraps every list response from the backend
type ListEnvelope[T any] struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Result  Page[T] `json:"result"`
	Error   *string `json:"error"`
}

// ItemEnvelope wraps single-entity create/update/login responses
type ItemEnvelope[T any] struct {
	Result  *T      `json:"result"`
	Message string  `json:"message,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// errorBody is the shape of a non-2xx response
type errorBody struct {
	Error   *string `json:"error"`
	Message string  `json:"message"`
}

func (b errorBody) text() string {
	if b.Error != nil && *b.Error != "" {
		return *b.Error
	}
	return b.Message
}
