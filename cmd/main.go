package main

import (
	"os"

	"github.com/quka-ai/quka-client/cmd/service"
)

func main() {
	if err := service.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
