package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/smartystreets/artifact-poller/cmd/poller"
	"github.com/smartystreets/artifact-poller/contracts"
	"github.com/smartystreets/artifact-poller/core"
	"github.com/smartystreets/artifact-poller/shell"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if isSubCommand("poll") {
		pollMain(os.Args[2:])
	} else if isSubCommand("checkout") {
		checkoutMain(os.Args[2:])
	} else if isSubCommand("repos") {
		reposMain(os.Args[2:])
	} else if isSubCommand("check") {
		checkMain(os.Args[2:])
	} else if isSubCommand("version") {
		versionMain()
	} else if isSubCommand("run") {
		runMain(os.Args[2:])
	} else {
		runMain(os.Args[1:])
	}
}

func isSubCommand(name string) bool {
	return len(os.Args) > 1 && os.Args[1] == name
}

func loadConfig(name string, args []string) contracts.PollConfig {
	loader := core.NewConfigLoader(shell.NewDiskFileSystem(""), shell.NewEnvironment(), os.Stdin, os.Stderr)
	config, err := loader.LoadConfig(name, args)
	if err != nil {
		log.Fatal(err)
	}
	return config
}

func runMain(args []string) {
	config := loadConfig("run", args)
	err := poller.RunMain(config, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func pollMain(args []string) {
	config := loadConfig("poll", args)
	decision, err := poller.PollMain(config, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if !decision.ShouldBuild() {
		os.Exit(exitNoChange)
	}
}

func checkoutMain(args []string) {
	config := loadConfig("checkout", args)
	source, closer := openDecision(config.DecisionPath)
	defer func() { _ = closer.Close() }()

	err := poller.CheckoutMain(config, source)
	if err != nil {
		log.Fatal(err)
	}
}

func openDecision(path string) (io.Reader, io.Closer) {
	if path == contracts.StdinPath {
		return os.Stdin, io.NopCloser(nil)
	}
	file, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	return file, file
}

func reposMain(args []string) {
	config := loadConfig("repos", args)
	err := poller.ReposMain(config, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func checkMain(args []string) {
	config := loadConfig("check", args)
	err := poller.CheckMain(config)
	if err != nil {
		log.Fatal(err)
	}
}

func versionMain() {
	fmt.Printf("artifact-poller [%s]\n", ldflagsSoftwareVersion)
}

const exitNoChange = 2

var ldflagsSoftwareVersion = "debug"
