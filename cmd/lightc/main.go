// Command lightc type-checks a light source file and reports diagnostics,
// the driver-level surface spec §6.4 describes (code generation and
// linking remain external collaborators per spec §1).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/log"

	"github.com/light-lang/lightc/internal/pipeline"
)

var (
	moduleRootFlag = flag.String("module-root", "", "Directory import paths are resolved relative to (defaults to the entry file's own directory).")
	verboseFlag    = flag.Bool("v", false, "Trace pipeline phase transitions to stderr.")
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lightc [-module-root dir] [-v] <file.lht>")
		os.Exit(1)
	}

	opts := pipeline.Options{
		ModuleRoot: *moduleRootFlag,
		Verbose:    *verboseFlag,
	}
	result, err := pipeline.Compile(opts, flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, d := range result.Diags.Items() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if result.Diags.HasErrors() {
		os.Exit(1)
	}
}
