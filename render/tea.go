// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/jeranaias/tasktree"
	"github.com/jeranaias/tasktree/internal/ui/components"
)

// ErrAlreadyAttached is returned when a renderer is attached to a second
// tree before being detached from the first.
var ErrAlreadyAttached = errors.New("render: renderer already attached")

// =============================================================================
// TEA RENDERER
// =============================================================================

// Tea draws the tree inline with a Bubble Tea program. The program reads no
// input and installs no signal handler; it only repaints.
//
// Tree changes are coalesced: a burst of notifications produces one snapshot,
// and snapshots are sent at most FPS times a second.
type Tea struct {
	out  io.Writer
	opts options

	mu      sync.Mutex
	session *teaSession
}

// NewTea creates a Tea renderer writing to w.
func NewTea(w io.Writer, opts ...Option) *Tea {
	return &Tea{out: w, opts: newOptions(opts)}
}

// teaSession is one attachment: a running program fed by a pump goroutine.
type teaSession struct {
	tree    *tasktree.Tree
	program *tea.Program

	unsubscribe func()
	dirty       chan struct{}
	cancel      context.CancelFunc
	pumpDone    chan struct{}
	runDone     chan struct{}
}

// Attach starts a program drawing tree.
func (r *Tea) Attach(tree *tasktree.Tree) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		return ErrAlreadyAttached
	}

	model := components.NewTaskTree(r.opts.themeFor(r.out), r.opts.spinnerKind())
	model.SetWidth(r.width())
	model.SetShowDuration(r.opts.showDuration)

	program := tea.NewProgram(model,
		tea.WithInput(nil),
		tea.WithOutput(r.out),
		tea.WithoutSignalHandler(),
		tea.WithFPS(r.opts.fps),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s := &teaSession{
		tree:     tree,
		program:  program,
		dirty:    make(chan struct{}, 1),
		cancel:   cancel,
		pumpDone: make(chan struct{}),
		runDone:  make(chan struct{}),
	}

	go func() {
		defer close(s.runDone)
		if _, err := program.Run(); err != nil {
			r.opts.logger.Printf("render: tea program: %v", err)
		}
	}()

	s.unsubscribe = tree.OnChange(s.markDirty)
	s.markDirty()
	go s.pump(ctx, rate.NewLimiter(rate.Limit(r.opts.fps), 1))

	r.session = s
	return nil
}

// Detach draws the tree as it is now and stops the program. A cleared tree
// erases the display; a closed tree leaves its last frame on screen.
func (r *Tea) Detach() {
	r.mu.Lock()
	s := r.session
	r.session = nil
	r.mu.Unlock()
	if s == nil {
		return
	}

	s.unsubscribe()
	s.cancel()
	<-s.pumpDone

	s.program.Send(components.FinalMsg(s.tree.Snapshot()))
	<-s.runDone
}

// width returns the configured width or the terminal's.
func (r *Tea) width() int {
	if r.opts.width > 0 {
		return r.opts.width
	}
	f, ok := r.out.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// markDirty records that the tree changed. It never blocks.
func (s *teaSession) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// pump forwards snapshots to the program, at most one per limiter token.
func (s *teaSession) pump(ctx context.Context, limiter *rate.Limiter) {
	defer close(s.pumpDone)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.dirty:
		}
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		msg := components.SnapshotMsg(s.tree.Snapshot())
		select {
		case <-ctx.Done():
			return
		case <-s.runDone:
			return
		default:
		}
		s.program.Send(msg)
	}
}
