package main

import (
	"github.com/krishimart/krishimart/cmd"
)

func main() {
	cmd.Start()
}
