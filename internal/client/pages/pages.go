// Package pages implements the data-loading side of each page: it calls
// the backend, renders the result through the escaper and writes it into
// the page's section of the document. Failures stay inside the section
// that triggered them.
package pages

import (
	"context"
	"errors"

	httpClient "github.com/iudanet/bakeclient/internal/client/api"
	"github.com/iudanet/bakeclient/internal/render"
	"github.com/iudanet/bakeclient/pkg/api"
)

// Navigator is the part of the page controller the pages call back into.
type Navigator interface {
	ShowPage(ctx context.Context, name string) bool
	ShowMessage(text string, kind render.Kind) string
	HideCreateRecipeForm()
}

// Authenticator reports whether a bearer token is held.
type Authenticator interface {
	IsAuthenticated() bool
}

// CurrentUser returns the logged in user.
type CurrentUser interface {
	User() (api.User, bool)
}

// failureMessage picks the text shown for a failed call: the transport
// description, else the backend's error field, else fallback.
func failureMessage(err error, fallback string) string {
	var transportErr *httpClient.TransportError
	if errors.As(err, &transportErr) {
		return "Network error: " + transportErr.Error()
	}
	var statusErr *httpClient.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return fallback
}
