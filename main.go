package main

import "github.com/kasuboski/mirra/cmd"

func main() {
	cmd.Execute()
}
