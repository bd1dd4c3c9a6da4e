package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/renameio"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/helptext"
	"pkt.systems/helptext/internal/config"
	"pkt.systems/helptext/internal/helpd"
	"pkt.systems/helptext/internal/helpdoc"
	"pkt.systems/version"
)

const (
	defaultWidth = 80

	exitOK    = 0
	exitError = 1
	exitUsage = 2

	// serveConfigured selects the listen address from the config file.
	serveConfigured = "config"
)

func init() {
	version.SetDefaultModule("pkt.systems/helptext")
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	themeName   string
	width       int
	boring      bool
	listThemes  bool
	showTOC     bool
	section     string
	softWrap    bool
	iconClasses []string
	markdown    bool
	outPath     string
	serveAddr   string
	showVersion bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("helptext", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/helptext/config.toml)")
	flags.StringVarP(&opts.themeName, "theme", "t", "default", "Theme name")
	flags.IntVarP(&opts.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&opts.showTOC, "toc", false, "List the table of contents")
	flags.StringVarP(&opts.section, "section", "s", "", "Show one section by toc index or title")
	flags.BoolVar(&opts.softWrap, "soft-wrap", false, "Break words longer than the width")
	flags.StringArrayVar(&opts.iconClasses, "icon-class", nil, "Span class whose text is hidden (repeatable)")
	flags.BoolVarP(&opts.markdown, "markdown", "m", false, "Treat stdin as Markdown")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVar(&opts.serveAddr, "serve", "", "Serve the rendered help over HTTP on addr")
	flags.Lookup("serve").NoOptDefVal = serveConfigured
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: helptext [flags] [input]\n")
		fmt.Fprintln(stderr, "\nInput is a path, file:// or http(s):// URL, or - for stdin.")
		fmt.Fprintln(stderr, "Without input the configured help file or the bundled help is shown.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return exitOK
	}
	if opts.listThemes {
		printThemes(stdout)
		return exitOK
	}
	if flags.NArg() > 1 {
		fmt.Fprintf(stderr, "expected at most one input, got %d\n", flags.NArg())
		return exitUsage
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}
	applyConfig(flags, &opts, cfg)

	theme, ok := helptext.ThemeByName(opts.themeName)
	if !ok {
		fmt.Fprintf(stderr, "unknown theme %q\n\n", opts.themeName)
		printThemes(stderr)
		return exitUsage
	}
	if opts.boring {
		theme = helptext.BoringTheme()
	}

	renderOpts := []helptext.RenderOption{
		helptext.WithIconClasses(opts.iconClasses...),
		helptext.WithSoftWrap(opts.softWrap),
	}
	doc, err := loadDocument(ctx, flags.Arg(0), cfg.HelpFile, opts.markdown, stdin, renderOpts)
	if err != nil {
		if flags.NArg() == 0 && errors.Is(err, fs.ErrNotExist) {
			// A configured help file that is not installed shows nothing.
			return exitOK
		}
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return exitError
	}

	if opts.serveAddr != "" {
		addr := opts.serveAddr
		if addr == serveConfigured {
			addr = cfg.Server.Addr
		}
		return serve(ctx, doc, addr, stderr, renderOpts)
	}

	width := resolveWidth(opts.width)
	var out bytes.Buffer
	if opts.showTOC {
		writeTOC(&out, doc.TOC, width)
	} else {
		runs := doc.Buffer.Runs()
		if opts.section != "" {
			i, err := resolveSection(doc.TOC, opts.section)
			if err != nil {
				fmt.Fprintf(stderr, "section: %v\n", err)
				return exitError
			}
			runs = doc.Section(i)
		}
		helptext.ConfigureTags(doc.Buffer, theme, helptext.DefaultLayout())
		if err := helptext.NewDisplay(&out, width, renderOpts...).Write(doc.Buffer, runs); err != nil {
			fmt.Fprintf(stderr, "render: %v\n", err)
			return exitError
		}
	}

	if err := writeOutput(opts.outPath, out.Bytes(), stdout); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return exitError
	}
	return exitOK
}

// applyConfig fills options the user did not set on the command line.
func applyConfig(flags *pflag.FlagSet, opts *options, cfg *config.Config) {
	if !flags.Changed("theme") {
		opts.themeName = cfg.Theme
	}
	if !flags.Changed("width") {
		opts.width = cfg.Width
	}
	if !flags.Changed("soft-wrap") {
		opts.softWrap = cfg.SoftWrap
	}
	if !flags.Changed("icon-class") {
		opts.iconClasses = cfg.IconClasses
	}
}

func loadDocument(ctx context.Context, input, helpFile string, markdown bool, stdin io.Reader, opts []helptext.RenderOption) (*helptext.Document, error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "-":
		format := helptext.FormatHTML
		if markdown {
			format = helptext.FormatMarkdown
		}
		return helptext.ReadDocument(stdin, format, opts...)
	case input != "":
		return openInput(ctx, input, opts)
	case helpFile != "":
		return helptext.Load(normalizePath(helpFile), opts...)
	default:
		return helptext.ReadDocument(helpdoc.Reader(), helptext.FormatHTML, opts...)
	}
}

func openInput(ctx context.Context, raw string, opts []helptext.RenderOption) (*helptext.Document, error) {
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return helptext.HTTPLoad(ctx, helptext.HTTPLoadRequest{URL: raw, Options: opts})
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return helptext.Load(normalizePath(path), opts...)
		}
	}
	return helptext.Load(normalizePath(raw), opts...)
}

// resolveSection accepts a toc index or a heading title.
func resolveSection(toc helptext.TOC, value string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if _, ok := toc.Entry(n); !ok {
			return 0, fmt.Errorf("index %d out of range (%d entries)", n, len(toc))
		}
		return n, nil
	}
	if i := toc.Find(value); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("no heading titled %q", strings.TrimSpace(value))
}

func writeTOC(w io.Writer, toc helptext.TOC, width int) {
	digits := len(strconv.Itoa(len(toc) - 1))
	labelWidth := 0
	if width > 0 {
		labelWidth = max(width-digits-1, 1)
	}
	for i, label := range toc.MenuLabels(labelWidth) {
		fmt.Fprintf(w, "%*d %s\n", digits, i, label)
	}
}

func serve(ctx context.Context, doc *helptext.Document, addr string, stderr io.Writer, opts []helptext.RenderOption) int {
	log := slog.New(slog.NewJSONHandler(stderr, nil))
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := helpd.NewServer(doc, log, opts...).ListenAndServe(ctx, addr); err != nil {
		log.Error("server error", "error", err)
		return exitError
	}
	return exitOK
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if strings.TrimSpace(path) == "" {
		_, err := stdout.Write(data)
		return err
	}
	clean := normalizePath(path)
	if dir := filepath.Dir(clean); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return renameio.WriteFile(clean, data, 0o644)
}

func printThemes(w io.Writer) {
	for _, name := range helptext.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
