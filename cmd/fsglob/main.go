package main

import (
	"github.com/fsglob-project/fsglob/cmd/cli"

	_ "github.com/fsglob-project/fsglob/pkg/logger"
)

func main() {
	cli.Execute()
}
