// Package launcher hands URLs to the operating system: webinar meeting
// links, content source pages, and certificate PDF downloads. The TUI never
// renders these itself.
package launcher

import (
	"fmt"
	"strings"
)

// Kind classifies a launch target.
type Kind int

const (
	KindLink Kind = iota
	KindPDF
)

// DetectKind classifies a target by extension; query and fragment suffixes
// are stripped first.
func DetectKind(target string) Kind {
	lower := strings.ToLower(target)
	if qIdx := strings.IndexAny(lower, "?#"); qIdx != -1 {
		lower = lower[:qIdx]
	}
	if strings.HasSuffix(lower, ".pdf") {
		return KindPDF
	}
	return KindLink
}

type Launcher struct {
	registry  *Registry
	pdfViewer string
	defOpener string
}

func NewLauncher() (*Launcher, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}

	platform := registry.Platform()

	l := &Launcher{
		registry:  registry,
		defOpener: platform.DefaultOpener,
	}

	if viewer := registry.FindAvailable(platform.PDFViewers); viewer != "" {
		l.pdfViewer = viewer
	} else {
		l.pdfViewer = l.defOpener
	}

	return l, nil
}

// Open launches the target with the opener matching its kind. The child
// process is detached; the TUI keeps the terminal.
func (l *Launcher) Open(target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("nothing to open")
	}

	opener := l.defOpener
	if DetectKind(target) == KindPDF {
		opener = l.pdfViewer
	}
	if opener == "" {
		return fmt.Errorf("no application found to open %s", target)
	}

	cmd, err := l.registry.Command(opener, target)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", opener, err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
