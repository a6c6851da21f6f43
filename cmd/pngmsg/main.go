// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// pngmsg hides text messages in PNG files.
//
//	pngmsg encode image.png ruSt "meet at noon" [out.png]
//	pngmsg encode image.png ruSt -- "-30 at noon" [out.png]
//	pngmsg decode image.png ruSt
//	pngmsg remove image.png ruSt
//	pngmsg print image.png
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// decode reports a missing message itself and returns an
		// ExitError; don't print a redundant "error:" line for it.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}
	return a.root().Execute(args)
}
