// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cli

import "fmt"

// ExitError signals a non-zero exit code without an extra error
// message: the command has already written its own output.  decode uses
// it when the requested chunk type is absent, which is an expected
// outcome rather than a failure worth an "error:" line.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) ExitCode() int {
	return e.Code
}
