// Package config reads the IDE preferences file.
//
//	[editor]
//	syntax_theme  = "default"
//	token_maker   = "chroma"      # or "treesitter"
//	history_limit = 1000
//	line_numbers  = true
//	tab_size      = 2
//
//	[paths]
//	lib = "/usr/share/sketcharea/lib"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	TokenMakerChroma     = "chroma"
	TokenMakerTreeSitter = "treesitter"
)

type Editor struct {
	SyntaxTheme  string `toml:"syntax_theme"`
	TokenMaker   string `toml:"token_maker"`
	HistoryLimit int    `toml:"history_limit"`
	LineNumbers  bool   `toml:"line_numbers"`
	TabSize      int    `toml:"tab_size"`
}

type Paths struct {
	Lib string `toml:"lib"`
}

type Preferences struct {
	Editor Editor `toml:"editor"`
	Paths  Paths  `toml:"paths"`
}

func Default() Preferences {
	return Preferences{
		Editor: Editor{
			SyntaxTheme:  "default",
			TokenMaker:   TokenMakerChroma,
			HistoryLimit: 1000,
			LineNumbers:  true,
			TabSize:      2,
		},
		Paths: Paths{Lib: "lib"},
	}
}

// Load reads preferences from path over the defaults. A missing file yields
// the defaults.
func Load(path string) (Preferences, error) {
	p := Default()
	if path == "" {
		return p, nil
	}
	md, err := toml.DecodeFile(path, &p)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("preferences %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		log.Warningf("preferences %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("preferences %s: %w", path, err)
	}
	return p, nil
}

func (p Preferences) Validate() error {
	switch p.Editor.TokenMaker {
	case TokenMakerChroma, TokenMakerTreeSitter:
	default:
		return fmt.Errorf("editor.token_maker: unknown token maker %q", p.Editor.TokenMaker)
	}
	if p.Editor.SyntaxTheme == "" {
		return errors.New("editor.syntax_theme: empty")
	}
	if p.Editor.HistoryLimit < 0 {
		return fmt.Errorf("editor.history_limit: negative limit %d", p.Editor.HistoryLimit)
	}
	if p.Editor.TabSize <= 0 {
		return fmt.Errorf("editor.tab_size: must be positive, got %d", p.Editor.TabSize)
	}
	return nil
}
