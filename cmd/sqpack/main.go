// sqpack reads assets and tables from a SqPack archive tree.
//
// Usage:
//
//	sqpack [flags] lookup <path>
//	sqpack [flags] cat <path>
//	sqpack [flags] schema <table>
//	sqpack [flags] rows <table>
//	sqpack [flags] list <category>[/<repository>]
//
// Settings come from an optional YAML file (--config), then SQPACK_*
// environment variables, then flags.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/meigma/sqpack"
	"github.com/meigma/sqpack/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	usage string
	run   func(c *sqpack.Catalog, arg string, stdout io.Writer) error
}

var commands = map[string]command{
	"lookup": {"lookup <path>   print the index entry and size of an asset", runLookup},
	"cat":    {"cat <path>      write asset bytes to stdout", runCat},
	"schema": {"schema <table>  print a table's columns, pages and languages", runSchema},
	"rows":   {"rows <table>    print one line per table row", runRows},
	"list":   {"list <pack>     print every index entry of a pack, e.g. exd or bg/ex1", runList},
}

func run(args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) error {
	var (
		configPath  string
		root        string
		platform    string
		language    string
		cacheDir    string
		logLevel    string
		maxFileSize uint64
	)

	flagSet := pflag.NewFlagSet("sqpack", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flagSet.StringVarP(&root, "root", "r", "", "archive tree root (the directory holding ffxiv/, ex1/, ...)")
	flagSet.StringVar(&platform, "platform", "", "platform token in archive file names (win32, ps3, ps4)")
	flagSet.StringVarP(&language, "language", "l", "", "preferred table language code (en, ja, de, fr, chs, cht, ko)")
	flagSet.StringVar(&cacheDir, "cache-dir", "", "decoded-asset cache directory")
	flagSet.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flagSet.Uint64Var(&maxFileSize, "max-file-size", 0, "maximum uncompressed asset size in bytes (0 = no limit)")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return err
	}
	flagSet.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "root":
			cfg.Root = root
		case "platform":
			cfg.Platform = platform
		case "language":
			cfg.Language = language
		case "cache-dir":
			cfg.Cache.Dir = cacheDir
		case "log-level":
			cfg.Log.Level = logLevel
		case "max-file-size":
			cfg.MaxFileSize = maxFileSize
		}
	})

	rest := flagSet.Args()
	if len(rest) != 2 {
		printUsage(stderr, flagSet)
		return fmt.Errorf("expected a command and one argument, got %d arguments", len(rest))
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		printUsage(stderr, flagSet)
		return fmt.Errorf("unknown command %q", rest[0])
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		return err
	}
	opts, err := cfg.CatalogOptions(logger)
	if err != nil {
		return err
	}
	catalog, err := sqpack.New(cfg.Root, opts...)
	if err != nil {
		return err
	}
	defer catalog.Close()

	return cmd.run(catalog, rest[1], stdout)
}

func runLookup(c *sqpack.Catalog, path string, stdout io.Writer) error {
	key, err := sqpack.ParseKey(path)
	if err != nil {
		return err
	}
	entry, err := c.Entry(path)
	if err != nil {
		return err
	}
	hashes, _ := sqpack.HashPath(path)

	fmt.Fprintf(stdout, "path       %s\n", path)
	fmt.Fprintf(stdout, "pack       %s (%s)\n", key, key.PackName())
	fmt.Fprintf(stdout, "hashes     dir=%08X file=%08X full=%08X\n", hashes.Directory, hashes.File, hashes.FullPath)
	fmt.Fprintf(stdout, "entry      %s\n", entry)
	fmt.Fprintf(stdout, "data file  %s\n", c.DataPath(key, entry.DataFileID))

	asset, err := c.Asset(path)
	if err != nil {
		fmt.Fprintf(stdout, "size       unavailable: %v\n", err)
		return nil
	}
	fmt.Fprintf(stdout, "size       %s (%d bytes)\n", humanize.IBytes(uint64(asset.Len())), asset.Len()) //nolint:gosec // length is non-negative
	return nil
}

func runCat(c *sqpack.Catalog, path string, stdout io.Writer) error {
	asset, err := c.Asset(path)
	if err != nil {
		return err
	}
	_, err = asset.WriteTo(stdout)
	return err
}

func runSchema(c *sqpack.Catalog, table string, stdout io.Writer) error {
	schema, err := c.Schema(table)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "variant      %s\n", schema.Variant)
	fmt.Fprintf(stdout, "rows         %s\n", humanize.Comma(int64(schema.RowCount)))
	fmt.Fprintf(stdout, "row size     %s\n", humanize.IBytes(uint64(schema.DataOffset)))

	langs := make([]string, len(schema.Languages))
	for i, l := range schema.Languages {
		langs[i] = l.String()
	}
	fmt.Fprintf(stdout, "languages    %s\n", strings.Join(langs, " "))

	fmt.Fprintf(stdout, "pages        %d\n", len(schema.Pages))
	for _, p := range schema.Pages {
		fmt.Fprintf(stdout, "  start=%d count=%d\n", p.StartRowID, p.RowCount)
	}
	fmt.Fprintf(stdout, "columns      %d\n", len(schema.Columns))
	for i, col := range schema.Columns {
		fmt.Fprintf(stdout, "  %3d  %-12s offset=%d size=%d\n", i, col.Type, col.Offset, col.Type.Size())
	}
	return nil
}

func runRows(c *sqpack.Catalog, table string, stdout io.Writer) error {
	rows, err := c.Rows(table)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, row := range rows {
		b.Reset()
		b.WriteString(strconv.FormatUint(uint64(row.ID), 10))
		for _, v := range row.Values {
			b.WriteByte(' ')
			if v.Kind() == sqpack.KindString {
				b.WriteString(strconv.Quote(v.Text()))
				continue
			}
			b.WriteString(v.String())
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(stdout, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func runList(c *sqpack.Catalog, pack string, stdout io.Writer) error {
	key, err := sqpack.ParseKey(strings.TrimSuffix(pack, "/") + "/")
	if err != nil {
		return err
	}
	entries, err := c.Entries(key)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(stdout, "%016X  %s@%d\n", e.Hash, c.DataPath(key, e.DataFileID), e.Offset); err != nil {
			return err
		}
	}
	return nil
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage:\n  sqpack [flags] <command> <argument>\n\nCommands:\n")
	for _, name := range []string{"lookup", "cat", "schema", "rows", "list"} {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintf(w, "\nFlags:\n")
	fmt.Fprint(w, flagSet.FlagUsages())
}
