// zish - canonical zish codec CLI
//
// Usage:
//
//	zish fmt [file]        Reformat a zish document canonically
//	zish validate [file]   Parse a document and report diagnostics
//	zish from-json [file]  Convert JSON (comments tolerated) to canonical zish
//	zish to-json [file]    Convert zish to JSON
//	zish version           Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/Neumenon/zish/zish"
)

const version = "1.0.0"

var logger = log.New(os.Stderr)

func main() {
	flags := pflag.NewFlagSet("zish", pflag.ContinueOnError)
	maxDepth := flags.Int("max-depth", 0, "override the nesting depth limit")
	strictJSON := flags.Bool("strict-json", false, "reject comments and trailing commas in JSON input")
	help := flags.BoolP("help", "h", false, "show help")
	flags.Usage = func() { printUsage(flags) }

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Fatal(err)
	}
	if *help {
		printUsage(flags)
		return
	}

	args := flags.Args()
	if len(args) < 1 {
		printUsage(flags)
		os.Exit(1)
	}
	cmd := args[0]

	if cmd == "version" {
		fmt.Printf("zish %s\n", version)
		return
	}

	input, err := readInput(args[1:])
	if err != nil {
		logger.Fatal("read input", "err", err)
	}

	opts := zish.DefaultDecodeOptions()
	if *maxDepth > 0 {
		opts.MaxDepth = *maxDepth
	}

	switch cmd {
	case "fmt":
		v, err := zish.DecodeWithOptions(string(input), opts)
		if err != nil {
			fail(err)
		}
		out, err := zish.Encode(v)
		if err != nil {
			fail(err)
		}
		fmt.Println(out)

	case "validate":
		v, err := zish.DecodeWithOptions(string(input), opts)
		if err != nil {
			fail(err)
		}
		logger.Info("document is valid", "kind", v.Kind(), "length", v.Len())

	case "from-json":
		data := input
		if !*strictJSON {
			data = jsonc.ToJSON(data)
		}
		v, err := zish.FromJSON(data)
		if err != nil {
			fail(err)
		}
		out, err := zish.Encode(v)
		if err != nil {
			fail(err)
		}
		fmt.Println(out)

	case "to-json":
		v, err := zish.DecodeWithOptions(string(input), opts)
		if err != nil {
			fail(err)
		}
		out, err := zish.ToJSON(v)
		if err != nil {
			fail(err)
		}
		fmt.Println(string(out))

	default:
		logger.Error("unknown command", "command", cmd)
		printUsage(flags)
		os.Exit(1)
	}
}

// readInput reads the file named by the first argument, or stdin when
// no file (or "-") is given.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// fail reports a codec diagnostic with its source position, or a plain
// error otherwise, and exits non-zero.
func fail(err error) {
	var zerr *zish.Error
	if errors.As(err, &zerr) && zerr.Kind != zish.EncodeError {
		logger.Fatal(zerr.Message,
			"kind", zerr.Kind,
			"line", zerr.Pos.Line,
			"column", zerr.Pos.Column)
	}
	logger.Fatal(err)
}

func printUsage(flags *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, `zish - canonical zish codec

Usage:
  zish fmt [file]        Reformat a zish document canonically
  zish validate [file]   Parse a document and report diagnostics
  zish from-json [file]  Convert JSON (comments tolerated) to canonical zish
  zish to-json [file]    Convert zish to JSON
  zish version           Print version info

If no file is given, input is read from stdin.

Flags:`)
	fmt.Fprint(os.Stderr, flags.FlagUsages())
}
