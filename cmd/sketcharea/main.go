package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/urfave/cli/v2"

	"github.com/iw2rmb/sketcharea"
	"github.com/iw2rmb/sketcharea/config"
	"github.com/iw2rmb/sketcharea/diag"
	"github.com/iw2rmb/sketcharea/docs"
	"github.com/iw2rmb/sketcharea/keywords"
	"github.com/iw2rmb/sketcharea/lexer"
	"github.com/iw2rmb/sketcharea/surface"
	"github.com/iw2rmb/sketcharea/widget"
)

func main() {
	app := &cli.App{
		Name:      "sketcharea",
		Usage:     "edit Arduino sketches in the terminal",
		Version:   sketcharea.VersionTag(),
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prefs", Usage: "preferences file", Value: defaultPrefsPath()},
			&cli.StringFlag{Name: "lib", Usage: "library directory holding themes, keywords and reference pages"},
			&cli.StringFlag{Name: "theme", Usage: "syntax theme, overriding editor.syntax_theme"},
			&cli.StringFlag{Name: "errors", Usage: "gcc output to load; the first error is selected"},
			&cli.StringFlag{Name: "log", Usage: "log file", Value: filepath.Join(os.TempDir(), "sketcharea.log")},
			&cli.IntFlag{Name: "verbose", Usage: "log verbosity", Value: 1},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sketcharea", "preferences.toml")
}

func run(c *cli.Context) error {
	logPath := c.String("log")
	commonlog.Configure(c.Int("verbose"), &logPath)

	prefs, err := config.Load(c.String("prefs"))
	if err != nil {
		return err
	}
	lib := prefs.Paths.Lib
	if c.IsSet("lib") {
		lib = c.String("lib")
	}
	themeName := prefs.Editor.SyntaxTheme
	if c.IsSet("theme") {
		themeName = c.String("theme")
	}

	kw, err := keywords.Load(filepath.Join(lib, "keywords.txt"))
	if err != nil {
		return err
	}
	log.Infof("%d keywords loaded from %s", kw.Len(), lib)

	files, err := openDocuments(c.Args().Slice(), prefs.Editor.HistoryLimit)
	if err != nil {
		return err
	}

	var clip widget.Clipboard
	if widget.SystemClipboardAvailable() {
		clip = widget.SystemClipboard{}
	}
	factory := func() lexer.TokenMaker { return lexer.NewSketchTokenMaker(kw) }
	if prefs.Editor.TokenMaker == config.TokenMakerTreeSitter {
		factory = func() lexer.TokenMaker { return lexer.NewTreeSitterTokenMaker(kw) }
	}

	s, err := surface.New(surface.Config{
		WidgetConfig: widget.Config{
			Document:     files[0].buf,
			History:      files[0].hist,
			ShowLineNums: prefs.Editor.LineNumbers,
			Style:        widget.DefaultStyle(),
			KeyMap:       widget.DefaultKeyMap(),
			TabSize:      prefs.Editor.TabSize,
			Clipboard:    clip,
		},
		LibDir:     lib,
		Theme:      themeName,
		Keywords:   kw,
		Docs:       docs.NewBrowser(lib),
		TokenMaker: factory,
	})
	if err != nil {
		return err
	}

	m := newApp(s, files)
	if path := c.String("errors"); path != "" {
		errs, err := loadErrors(path)
		if err != nil {
			return err
		}
		m.showFirstError(errs)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func loadErrors(path string) ([]diag.CompilerError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("errors: %w", err)
	}
	defer f.Close()
	return diag.Parse(f)
}
