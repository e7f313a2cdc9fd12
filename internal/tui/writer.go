package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ctsim/internal/store"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// Writer streams records into a running viewer.
type Writer struct {
	program teaProgram
	done    chan struct{}
	err     error
}

// Start launches the viewer in the alternate screen and returns a Writer
// feeding it.
func Start() *Writer {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	w := &Writer{program: p, done: make(chan struct{})}
	go func() {
		_, w.err = p.Run()
		close(w.done)
	}()
	return w
}

// Write implements store.ResultWriter.
func (w *Writer) Write(rec store.Record) error {
	w.program.Send(recordMsg{rec: rec})
	return nil
}

// Wait blocks until the user quits the viewer.
func (w *Writer) Wait() error {
	if w.done != nil {
		<-w.done
	}
	return w.err
}

// Show opens the viewer on recs and blocks until the user quits.
func Show(recs ...store.Record) error {
	_, err := tea.NewProgram(newModel(recs...), tea.WithAltScreen()).Run()
	return err
}
