// SPDX-License-Identifier: MPL-2.0

// Command jlinker assembles custom Java runtime images with jlink.
package main

import cmd "github.com/jlinker/jlinker/cmd/jlinker"

func main() {
	cmd.Execute()
}
