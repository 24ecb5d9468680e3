package main

import (
	"log"
	"os"

	"github.com/trezcool/clno/core"
)

func main() {
	logger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags)

	conf, err := core.NewConfig()
	if err != nil {
		logger.Fatalf("loading config: %v", err)
	}

	cli := commandLine{conf: conf, out: os.Stdout}
	err = cli.run(os.Args)
	if cErr := cli.close(); cErr != nil {
		logger.Printf("closing storage: %v", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Printf("error: %s", err)
		}
		os.Exit(1)
	}
}
