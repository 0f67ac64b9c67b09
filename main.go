package main

import (
	"github.com/lightlab/morserx/cmd"
	"github.com/lightlab/morserx/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
