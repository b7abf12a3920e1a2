// Package banner renders the console output of the development server.
package banner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fatih/color"
	"golang.org/x/net/html"
	"golang.org/x/text/width"

	"github.com/f4ah6o/devserve-go/internal/config"
)

// boxWidth is the number of display cells between the box borders.
const boxWidth = 64

var heading = color.New(color.Bold)

// Render writes the startup banner for cfg to w.
func Render(w io.Writer, cfg config.Config) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔"+strings.Repeat("═", boxWidth)+"╗")
	fmt.Fprintln(w, "║"+strings.Repeat(" ", boxWidth)+"║")
	fmt.Fprintln(w, "║"+center(cfg.Title, boxWidth)+"║")
	fmt.Fprintln(w, "║"+strings.Repeat(" ", boxWidth)+"║")
	fmt.Fprintln(w, "╚"+strings.Repeat("═", boxWidth)+"╝")
	fmt.Fprintln(w)

	base := fmt.Sprintf("http://localhost:%d", cfg.Port)
	fmt.Fprintf(w, "Server running at: %s\n", base)
	fmt.Fprintf(w, "Serving directory: %s\n", cfg.Root)

	if len(cfg.Entries) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "📖 Available endpoints:")
		urls := make([]string, len(cfg.Entries))
		for i, e := range cfg.Entries {
			urls[i] = base + e.Path
		}
		pad := maxWidth(urls)
		for i, e := range cfg.Entries {
			fmt.Fprintf(w, "   • %s  (%s)\n", padRight(urls[i], pad), entryLabel(cfg.Root, e))
		}
	}

	if len(cfg.Modules) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "📁 Module locations:")
		paths := make([]string, len(cfg.Modules))
		for i, m := range cfg.Modules {
			paths[i] = m.Path
		}
		pad := maxWidth(paths)
		for _, m := range cfg.Modules {
			fmt.Fprintf(w, "   • %s  (%s)\n", padRight(m.Path, pad), m.Label)
		}
	}

	if len(cfg.Tips) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "🛠️  Development tips:")
		for _, tip := range cfg.Tips {
			fmt.Fprintf(w, "   • %s\n", tip)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")
	fmt.Fprintln(w)
}

// Stopped writes the shutdown acknowledgment.
func Stopped(w io.Writer) {
	fmt.Fprintln(w, "\n\n✅ Server stopped")
}

// entryLabel returns e.Label, the page title when the label is empty, and
// marks pages missing from root.
func entryLabel(root string, e config.Entry) string {
	name := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(e.Path, "/")))
	label := e.Label

	if _, err := os.Stat(name); err != nil {
		if label == "" {
			label = e.Path
		}
		return label + ", not found"
	}

	if label == "" {
		if title, err := PageTitle(name); err == nil && title != "" {
			label = title
		} else {
			label = e.Path
		}
	}
	return label
}

// PageTitle returns the trimmed <title> of the HTML file at name.
func PageTitle(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", name, err)
	}

	doc := goquery.NewDocumentFromNode(root)
	return strings.TrimSpace(doc.Find("head > title").First().Text()), nil
}

// StringWidth returns the number of terminal cells s occupies.
func StringWidth(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == '\uFE0F' || r == '\u200D':
			// Variation selector and zero-width joiner take no cell.
		case r >= 0x1F300 && r <= 0x1FAFF:
			// Pictographic emoji render double width.
			n += 2
		default:
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				n += 2
			default:
				n++
			}
		}
	}
	return n
}

func center(s string, cells int) string {
	w := StringWidth(s)
	if w >= cells {
		return s
	}
	left := (cells - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", cells-w-left)
}

func padRight(s string, cells int) string {
	if w := StringWidth(s); w < cells {
		return s + strings.Repeat(" ", cells-w)
	}
	return s
}

func maxWidth(ss []string) int {
	m := 0
	for _, s := range ss {
		if w := StringWidth(s); w > m {
			m = w
		}
	}
	return m
}
