package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"golang.org/x/term"

	"github.com/dshills/unitext"
	"github.com/dshills/unitext/internal/codec"
	"github.com/dshills/unitext/internal/script"
)

// errWideBytes is returned when the wide form is used as a byte stream.
var errWideBytes = errors.New("the wide form has no byte serialization; use utf-16le or utf-32le")

// newFlagSet creates a subcommand FlagSet writing to stderr.
func (e *env) newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: ustr %s %s\n\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// parse wraps FlagSet.Parse so run can tell usage errors apart.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	return nil
}

func (e *env) convert(args []string) error {
	fs := e.newFlagSet("convert", "[-from ENC] [-to ENC] [file]")
	from := fs.String("from", "auto", "Source encoding")
	to := fs.String("to", "narrow", "Target encoding")
	if err := parse(fs, args); err != nil {
		return err
	}

	data, err := e.readInput(fs.Args())
	if err != nil {
		return err
	}
	txt, err := e.decode(data, *from)
	if err != nil {
		return err
	}
	e.log.Debug("convert: %d codepoints from %s to %s", txt.Count(), *from, *to)

	if enc, ok := unitext.ParseEncoding(*to); ok && enc == unitext.Narrow && e.quote() {
		_, err := txt.WriteTo(e.stdout)
		if err == nil {
			_, err = io.WriteString(e.stdout, "\n")
		}
		return err
	}

	out, err := encode(txt, *to)
	if err != nil {
		return err
	}
	_, err = e.stdout.Write(out)
	return err
}

func (e *env) inspect(args []string) error {
	fs := e.newFlagSet("inspect", "[-from ENC] [-json] [file]")
	from := fs.String("from", "auto", "Source encoding")
	asJSON := fs.Bool("json", e.cfg.Output.Format == "json", "Write a JSON document")
	if err := parse(fs, args); err != nil {
		return err
	}

	data, err := e.readInput(fs.Args())
	if err != nil {
		return err
	}
	txt, err := e.decode(data, *from)
	if err != nil {
		return err
	}

	if *asJSON {
		doc, err := inspectJSON(txt)
		if err != nil {
			return err
		}
		_, err = e.stdout.Write(pretty.Pretty(doc))
		return err
	}
	return inspectTable(e.stdout, txt)
}

func (e *env) runScript(args []string) error {
	fs := e.newFlagSet("run", "[-timeout D] script.lua")
	timeout := fs.Duration("timeout", script.DefaultTimeout, "Execution time limit (0 disables)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := script.New(
		script.WithOutput(e.stdout),
		script.WithTimeout(*timeout),
		script.WithTextOptions(e.textOptions()...),
	)
	defer r.Close()

	start := time.Now()
	err := r.DoFile(ctx, fs.Arg(0))
	e.log.Debug("run %s finished in %s", fs.Arg(0), time.Since(start))
	return err
}

// readInput reads the named file, or stdin when no file or "-" is given.
func (e *env) readInput(args []string) ([]byte, error) {
	switch {
	case len(args) > 1:
		return nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	case len(args) == 0 || args[0] == "-":
		return io.ReadAll(e.stdin)
	default:
		return os.ReadFile(args[0])
	}
}

// decode builds a Text from data in the named form. "auto" sniffs BOMs
// and UTF-8 validity.
func (e *env) decode(data []byte, from string) (*unitext.Text, error) {
	opts := e.textOptions()
	if strings.EqualFold(from, "auto") {
		cs := codec.DetectEncoding(data)
		e.log.Debug("detected %s input", cs.Name())
		return unitext.FromEncoded(codec.StripBOM(data), cs.Name(), opts...)
	}

	enc, ok := unitext.ParseEncoding(from)
	if !ok {
		return unitext.FromEncoded(data, from, opts...)
	}
	switch enc {
	case unitext.Narrow:
		return unitext.FromNarrow(data, opts...)
	case unitext.UTF8:
		return unitext.FromUTF8(codec.StripBOM(data), opts...)
	case unitext.Wide:
		return nil, errWideBytes
	default:
		return unitext.FromEncoded(data, enc.String(), opts...)
	}
}

// encode serializes txt in the named form. Narrow output is best effort;
// every other form is strict.
func encode(txt *unitext.Text, to string) ([]byte, error) {
	enc, ok := unitext.ParseEncoding(to)
	if !ok {
		return txt.Encode(to)
	}
	switch enc {
	case unitext.Narrow:
		return txt.ToNarrow(), nil
	case unitext.UTF8:
		return txt.ToUTF8(), nil
	case unitext.Wide:
		return nil, errWideBytes
	default:
		return txt.Encode(enc.String())
	}
}

// quote reports whether narrow output should be quoted.
func (e *env) quote() bool {
	switch e.cfg.Output.Quote {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := e.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func inspectTable(w io.Writer, txt *unitext.Text) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tCODEPOINT\tUTF-8\tUTF-16\tWIDTH\tCHAR")
	for i, r := range txt.All() {
		fmt.Fprintf(tw, "%d\tU+%04X\t%s\t%s\t%d\t%s\n",
			i, r,
			strings.Join(utf8Units(r), " "),
			strings.Join(utf16Units(r), " "),
			uniseg.StringWidth(string(r)),
			display(r))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d codepoints, %d UTF-8 bytes, %d UTF-16 units, width %d\n",
		txt.Count(), len(txt.ToUTF8()), len(txt.ToUTF16()), uniseg.StringWidth(txt.String()))
	return err
}

// inspectJSON builds the JSON form of the inspect table.
func inspectJSON(txt *unitext.Text) ([]byte, error) {
	s := txt.String()
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("text", s)
	set("count", txt.Count())
	set("utf8_bytes", len(s))
	set("utf16_units", len(txt.ToUTF16()))
	set("width", uniseg.StringWidth(s))
	set("codepoints", []any{})
	for i, r := range txt.All() {
		prefix := "codepoints." + strconv.Itoa(i)
		set(prefix+".index", i)
		set(prefix+".codepoint", fmt.Sprintf("U+%04X", r))
		set(prefix+".utf8", utf8Units(r))
		set(prefix+".utf16", utf16Units(r))
		set(prefix+".width", uniseg.StringWidth(string(r)))
	}
	return doc, err
}

func utf8Units(r rune) []string {
	var units []string
	for _, b := range utf8.AppendRune(nil, r) {
		units = append(units, fmt.Sprintf("%02X", b))
	}
	return units
}

func utf16Units(r rune) []string {
	var units []string
	for _, u := range utf16.AppendRune(nil, r) {
		units = append(units, fmt.Sprintf("%04X", u))
	}
	return units
}

// display returns a printable rendering of r for the CHAR column.
func display(r rune) string {
	if unicode.IsPrint(r) {
		return string(r)
	}
	q := strconv.QuoteRune(r)
	return q[1 : len(q)-1]
}
