// Package docs opens reference documentation pages.
package docs

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("sketcharea.docs")

// Opener displays a URL.
type Opener func(url string) error

// Browser resolves reference anchors such as "Reference/DigitalWrite" to
// HTML pages under Root and displays them.
type Browser struct {
	Root string
	Open Opener
}

func NewBrowser(root string) *Browser {
	return &Browser{Root: root, Open: SystemOpener}
}

// Resolve returns the page for anchor, if it exists under Root.
func (b *Browser) Resolve(anchor string) (string, bool) {
	if anchor == "" {
		return "", false
	}
	rel := filepath.Clean(filepath.FromSlash(anchor) + ".html")
	if !filepath.IsLocal(rel) {
		return "", false
	}
	path := filepath.Join(b.Root, rel)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// ShowReference displays the page for anchor. Missing pages and opener
// failures are logged and otherwise ignored.
func (b *Browser) ShowReference(anchor string) {
	path, ok := b.Resolve(anchor)
	if !ok {
		log.Warningf("no such reference: %s", anchor)
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	url := "file://" + filepath.ToSlash(abs)
	log.Debugf("open reference: %s", url)

	open := b.Open
	if open == nil {
		open = SystemOpener
	}
	if err := open(url); err != nil {
		log.Errorf("open reference %s: %s", url, err)
	}
}

// SystemOpener hands url to the desktop's default handler.
func SystemOpener(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
