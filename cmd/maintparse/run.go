package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"maintnotice/internal/core/extract"
	"maintnotice/internal/core/notice"
	"maintnotice/internal/platform/config"
	perr "maintnotice/internal/platform/errors"
	"maintnotice/internal/platform/logger"
)

// exit statuses
const (
	exitOK         = 0
	exitError      = 1
	exitIncomplete = 2
)

type options struct {
	inputFile    string
	dir          string
	from         string
	profile      string
	profilesFile string
	normalize    string
	workers      int
	listProfiles bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("maintparse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.inputFile, "input-file", "", "notice file to parse, - for stdin")
	fs.StringVar(&o.dir, "dir", "", "parse every regular file in this directory")
	fs.StringVar(&o.from, "email-from", "", "sender address used to pick the profile")
	fs.StringVar(&o.profile, "profile", "", "profile name, overrides -email-from")
	fs.StringVar(&o.profilesFile, "profiles", "", "overlay profile pack (YAML or JSON)")
	fs.StringVar(&o.normalize, "normalize", "", "normalize input before matching (true|false)")
	fs.IntVar(&o.workers, "workers", 4, "concurrent files in -dir mode (>=1)")
	fs.BoolVar(&o.listProfiles, "list-profiles", false, "list registered profiles and sender mappings")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	modes := 0
	for _, on := range []bool{o.inputFile != "", o.dir != "", o.listProfiles} {
		if on {
			modes++
		}
	}
	if modes != 1 {
		return o, perr.InvalidArgf("exactly one of -input-file, -dir or -list-profiles is required")
	}
	if o.workers < 1 {
		return o, perr.InvalidArgf("-workers must be >= 1")
	}
	if o.normalize != "" {
		if _, err := strconv.ParseBool(o.normalize); err != nil {
			return o, perr.InvalidArgf("-normalize must be true or false")
		}
	}
	return o, nil
}

func setEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "maintparse:", err)
		}
		return exitError
	}

	// flags win over MAINTPARSE_* env
	setEnv("MAINTPARSE_PROFILES_FILE", o.profilesFile)
	setEnv("MAINTPARSE_NORMALIZE", o.normalize)

	ex, err := extract.FromConfig(config.New())
	if err != nil {
		fmt.Fprintln(stderr, "maintparse:", err)
		return exitError
	}

	switch {
	case o.listProfiles:
		return listProfiles(ex, stdout)
	case o.dir != "":
		return parseDir(ctx, ex, o, stdout, stderr)
	default:
		return parseOne(ctx, ex, o, stdin, stdout, stderr)
	}
}

func parse(ctx context.Context, ex *extract.Extractor, o options, body string) (extract.Result, error) {
	if o.profile != "" {
		return ex.ParseWith(ctx, body, o.profile)
	}
	return ex.Parse(ctx, body, o.from)
}

func readInput(path string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read %s", path)
	}
	return string(b), nil
}

func parseOne(ctx context.Context, ex *extract.Extractor, o options, stdin io.Reader, stdout, stderr io.Writer) int {
	body, err := readInput(o.inputFile, stdin)
	if err != nil {
		fmt.Fprintln(stderr, "maintparse:", err)
		return exitError
	}
	res, err := parse(ctx, ex, o, body)
	if err != nil {
		fmt.Fprintln(stderr, "maintparse:", describe(err))
		return exitError
	}
	if !res.Complete {
		fmt.Fprintf(stderr, "maintparse: no usable maintenance data found (profile %s, last token %q)\n", res.Profile, res.LastToken)
		return exitIncomplete
	}
	doc, err := notice.Serialize(res.Record)
	if err != nil {
		fmt.Fprintln(stderr, "maintparse:", err)
		return exitError
	}
	fmt.Fprintln(stdout, string(doc))
	return exitOK
}

// fileResult is one line of -dir output
type fileResult struct {
	File      string           `json:"file"`
	Profile   string           `json:"profile,omitempty"`
	Complete  bool             `json:"complete"`
	LastToken string           `json:"last_token,omitempty"`
	Notice    *notice.Document `json:"notice,omitempty"`
	Error     string           `json:"error,omitempty"`
	Field     string           `json:"field,omitempty"`
}

func parseDir(ctx context.Context, ex *extract.Extractor, o options, stdout, stderr io.Writer) int {
	entries, err := os.ReadDir(o.dir)
	if err != nil {
		fmt.Fprintln(stderr, "maintparse:", err)
		return exitError
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(o.dir, e.Name()))
		}
	}
	sort.Strings(files)

	log := logger.Named("maintparse")
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseFile(gctx, ex, o, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(stderr, "maintparse:", err)
		return exitError
	}

	enc := json.NewEncoder(stdout)
	code := exitOK
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			fmt.Fprintln(stderr, "maintparse:", err)
			return exitError
		}
		switch {
		case r.Error != "":
			code = exitError
		case !r.Complete && code == exitOK:
			code = exitIncomplete
		}
	}
	log.Info().Int("files", len(files)).Int("workers", o.workers).Int("exit", code).Msg("batch done")
	return code
}

func parseFile(ctx context.Context, ex *extract.Extractor, o options, path string) fileResult {
	out := fileResult{File: path}
	body, err := readInput(path, nil)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	res, err := parse(ctx, ex, o, body)
	out.Profile, out.LastToken = res.Profile, res.LastToken
	if err != nil {
		w := perr.WireFrom(err)
		out.Error, out.Field = w.Message, w.Field
		return out
	}
	out.Complete = res.Complete
	if res.Complete {
		doc := res.Record.Document()
		out.Notice = &doc
	}
	return out
}

func listProfiles(ex *extract.Extractor, stdout io.Writer) int {
	reg := ex.Registry()
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROFILE\tDEFAULT\tDESCRIPTION")
	for _, info := range reg.List() {
		def := ""
		if info.Name == reg.DefaultName() {
			def = "*"
		}
		desc := info.Description
		if info.AliasOf != "" {
			desc = "alias of " + info.AliasOf
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, def, desc)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SENDER\tPROFILE\t")
	senders := reg.Senders()
	domains := make([]string, 0, len(senders))
	for d := range senders {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	for _, d := range domains {
		fmt.Fprintf(tw, "%s\t%s\t\n", d, senders[d])
	}
	if err := tw.Flush(); err != nil {
		return exitError
	}
	return exitOK
}

// describe renders an error with its code and offending field
func describe(err error) string {
	e, ok := perr.As(err)
	if !ok {
		return err.Error()
	}
	if e.Field() != "" {
		return fmt.Sprintf("%s error in %s: %v", e.Code(), e.Field(), err)
	}
	return fmt.Sprintf("%s error: %v", e.Code(), err)
}
