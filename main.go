package main

import (
	"os"

	"github.com/izouxv/goShareVote/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
