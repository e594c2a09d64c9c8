// SPDX-License-Identifier: MPL-2.0

// Command blendzip diagnoses Blender add-on and extension zip archives.
package main

import cmd "blendzip/cmd/blendzip"

func main() {
	cmd.Execute()
}
