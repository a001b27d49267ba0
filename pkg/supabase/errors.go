package supabase

import "fmt"

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, response: %s", e.StatusCode, e.Body)
}
