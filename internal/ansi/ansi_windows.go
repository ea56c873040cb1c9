// Copyright 2023 GreyXor. All rights reserved.
// Mount of this source code is governed by a MIT license that can be found
// at https://gitlab.com/greyxor/slogor/-/blob/main/LICENSE?ref_type=heads.

package ansi

import (
	"os"

	"golang.org/x/sys/windows"
)

// init enables virtual terminal processing on the Windows console so the
// ANSI escape sequences render as colors instead of raw bytes.
func init() {
	stdout := windows.Handle(os.Stdout.Fd())

	var originalMode uint32
	windows.GetConsoleMode(stdout, &originalMode)

	newConsoleMode := originalMode | windows.ENABLE_PROCESSED_OUTPUT |
		windows.ENABLE_WRAP_AT_EOL_OUTPUT | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING

	windows.SetConsoleMode(stdout, newConsoleMode)
}
