package main

import (
	"github.com/Remblej/Game-of-Space-and-Time/internal/cli"
)

func main() {
	cli.Execute()
}
