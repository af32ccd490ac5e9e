package urlinfo

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports a transport failure: the request never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a response outside the 2xx range.
type HTTPError struct {
	Op     string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.Status, e.Body)
}

// MalformedResponseError reports a 2xx response whose body does not match the expected schema.
type MalformedResponseError struct {
	Op     string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s response: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s response: %s", e.Op, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// AddErrorKind classifies a rejected create request.
type AddErrorKind int

const (
	AddUnknown AddErrorKind = iota
	AddDuplicate
	AddUnreachableTarget
	AddInvalidURL
)

func (k AddErrorKind) String() string {
	switch k {
	case AddDuplicate:
		return "duplicate"
	case AddUnreachableTarget:
		return "unreachable target"
	case AddInvalidURL:
		return "invalid url"
	default:
		return "unknown"
	}
}

const unknownAddMessage = "An unknown error occurred."

// AddError is returned when the backend refuses to create a record.
type AddError struct {
	Kind    AddErrorKind
	Status  int
	Message string
}

func (e *AddError) Error() string {
	switch e.Kind {
	case AddDuplicate:
		return "This URL already exists."
	case AddUnreachableTarget:
		return "The URL is valid, but the server could not be reached."
	case AddInvalidURL:
		return "Enter a valid URL."
	}
	if e.Message != "" {
		return e.Message
	}
	return unknownAddMessage
}

// addErrorForStatus maps a non-2xx create response onto the add taxonomy.
func addErrorForStatus(status int, message string) *AddError {
	switch status {
	case http.StatusConflict:
		return &AddError{Kind: AddDuplicate, Status: status}
	case http.StatusUnprocessableEntity:
		return &AddError{Kind: AddUnreachableTarget, Status: status}
	case http.StatusBadRequest:
		return &AddError{Kind: AddInvalidURL, Status: status}
	}
	if message == "" {
		message = unknownAddMessage
	}
	return &AddError{Kind: AddUnknown, Status: status, Message: message}
}

// IsAddKind reports whether err carries an AddError of the given kind.
func IsAddKind(err error, kind AddErrorKind) bool {
	var addErr *AddError
	return errors.As(err, &addErr) && addErr.Kind == kind
}

// Describe renders err as a message suitable for the status line or stderr.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var addErr *AddError
	if errors.As(err, &addErr) {
		return addErr.Error()
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Network error: " + netErr.Err.Error()
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Op == opRemove && (httpErr.Status == http.StatusNotFound || httpErr.Status == http.StatusGone) {
			return "This URL info does not exist."
		}
		if httpErr.Op == opRemove {
			return fmt.Sprintf("Could not delete: the URL info does not exist or was already removed (status %d).", httpErr.Status)
		}
		return fmt.Sprintf("HTTP error! Status: %d", httpErr.Status)
	}

	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return "Unexpected data format: " + malformed.Reason
	}

	return err.Error()
}
