package main

import (
	"log"
	"os"

	"github.com/bsv-blockchain/epochledger/cmd/epochctl"
	"github.com/ordishs/gocore"
)

// Name used by build script for the binaries. (Please keep on single line)
const progname = "epochledger"

// Version & commit strings injected at build with -ldflags -X...
var version string
var commit string

func init() {
	gocore.SetInfo(progname, version, commit)
}

func main() {
	if err := epochctl.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
