package errors

import "fmt"

// OfflineMessage is printed whenever the movie service cannot be reached.
const OfflineMessage = "Your computer seems to be offline."

// UserMessage returns the fixed console line for a failed fetch.
func UserMessage(err error) string {
	var fetchErr *FetchError
	if !As(err, &fetchErr) {
		return fmt.Sprintf("Something went wrong: %v", err)
	}

	switch fetchErr.Kind {
	case KindOffline:
		return OfflineMessage
	case KindNotFound:
		return "The movie service could not find what we asked for."
	case KindStatus:
		return fmt.Sprintf("The movie service refused the request (HTTP %d).", fetchErr.StatusCode)
	case KindMalformed:
		return "The movie service sent a response we could not read."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}
