package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/client"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/router"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/workflow"
)

// describeError turns an error into the notice shown to the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, router.ErrAuthRequired):
		return "Please log in first (commands: login, signup)"
	case errors.Is(err, router.ErrUnknownRoute):
		return "No such page"
	case errors.Is(err, workflow.ErrSubmitInProgress):
		return "Please wait, a request is already running"
	case errors.Is(err, workflow.ErrValidation):
		return "Invalid input: " + strings.TrimPrefix(err.Error(), workflow.ErrValidation.Error()+": ")
	case errors.Is(err, client.ErrUnauthorized):
		return "Not authorized: " + err.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, please try again later"
	}
	return "Error: " + err.Error()
}

// printErr prints a blocking notice. Discarded responses are never shown.
func (a *App) printErr(err error) {
	if err == nil || errors.Is(err, workflow.ErrDiscarded) {
		return
	}
	a.println(describeError(err))
}
