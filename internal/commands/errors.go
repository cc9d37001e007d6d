package commands

import (
	"errors"
	"fmt"
	"io"

	"taskflow/internal/api"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
)

// fail prints a failure and maps it to an exit code: validation failures are
// user errors, authentication failures are auth errors (the gateway has
// already erased the credential by the time we see one), everything else is
// a backend error.
func fail(errOut io.Writer, err error) int {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(errOut, "error: %s\n", verr)
		return exitcode.UserError
	}

	var aerr *api.Error
	if errors.As(err, &aerr) && aerr.IsAuth() {
		fmt.Fprintf(errOut, "error: %s (run: taskflow login)\n", aerr.Message)
		return exitcode.AuthError
	}

	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.BackendError
}
