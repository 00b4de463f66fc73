// Cinder CLI - compiles .cn sources to backend IR
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/cinderlang/cinder/compiler"
	"github.com/cinderlang/cinder/manifest"
	"github.com/cinderlang/cinder/pkg/ir"
	"github.com/cinderlang/cinder/pkg/lower"
	"github.com/cinderlang/cinder/pkg/store"
)

var log = commonlog.GetLogger("cinderc")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	dump := flag.Bool("dump", false, "Print disassembly instead of writing artifacts")
	dbPath := flag.String("db", "", "Artifact database path (default from cinder.toml)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cinderc [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Compiles Cinder source files to backend IR.\n")
		fmt.Fprintf(os.Stderr, "With no files, sources are taken from cinder.toml.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cinderc -dump main.cn     # Show the lowered IR\n")
		fmt.Fprintf(os.Stderr, "  cinderc -db out.db ./...  # Compile into an artifact database\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fatal("loading manifest: %v", err)
	}

	files := flag.Args()
	if len(files) == 0 {
		if m == nil {
			flag.Usage()
			os.Exit(1)
		}
		files, err = m.SourceFiles()
		if err != nil {
			fatal("%v", err)
		}
	}
	if len(files) == 0 {
		fatal("no source files")
	}

	types := ir.DefaultTypes()
	if m != nil {
		for _, name := range m.Backend.Types {
			types.Register(name)
			log.Debugf("registered backend type %s", name)
		}
	}

	backend, closer, err := selectBackend(*dump, *dbPath, m, types)
	if err != nil {
		fatal("%v", err)
	}
	if closer != nil {
		defer closer()
	}

	if err := lower.DeclareTypes(backend, types); err != nil {
		fatal("declaring types: %v", err)
	}

	for _, file := range files {
		log.Infof("compiling %s", file)
		if err := compileFile(file, types, backend); err != nil {
			fatal("%s: %v", file, err)
		}
	}
}

// selectBackend picks the sink for compiled functions: a disassembly
// printer with -dump, otherwise the SQLite artifact store.
func selectBackend(dump bool, dbPath string, m *manifest.Manifest, types *ir.TypeTable) (lower.Backend, func(), error) {
	if dump {
		return &dumpBackend{types: types}, nil, nil
	}

	if dbPath == "" {
		if m != nil {
			dbPath = m.Output.Database
		} else {
			dbPath = "cinder.db"
		}
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { s.Close() }, nil
}

// compileFile reads and lowers every top-level form in one source file.
func compileFile(path string, types *ir.TypeTable, backend lower.Backend) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	forms, err := compiler.ReadString(string(data))
	if err != nil {
		return err
	}
	return lower.CompileProgram(forms, types, backend)
}

// dumpBackend prints every compiled function as a disassembly listing.
type dumpBackend struct {
	types *ir.TypeTable
}

func (d *dumpBackend) DeclareType(name string, id ir.TypeID) error {
	log.Debugf("type %s = t%d", name, id)
	return nil
}

func (d *dumpBackend) Emit(fn *ir.Function) error {
	fmt.Print(ir.Disassemble(fn, d.types))
	fmt.Println()
	return nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "cinderc: "+format+"\n", args...)
	os.Exit(1)
}
