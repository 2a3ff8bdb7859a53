package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/texelation/texedit/adapter"
	"github.com/texelation/texedit/editor"
	"github.com/texelation/texedit/texelui/core"
	"github.com/texelation/texedit/texelui/scroll"
	"github.com/texelation/texedit/texelui/widgets"
)

type config struct {
	tabWidth    int
	traditional bool
	autoIndent  bool
	readOnly    bool
	widgetTree  bool
	file        string
}

func main() {
	var cfg config

	root := &cobra.Command{
		Use:   "texedit-demo [file]",
		Short: "Terminal multiline text-editing control demo",
		Long: `texedit-demo hosts the editor.Control core in a bare tcell screen,
for exercising the control outside of a full texelui widget tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.file = args[0]
			}
			if cfg.widgetTree {
				return runWidgetTree(cfg)
			}
			return run(cfg)
		},
	}

	root.Flags().IntVar(&cfg.tabWidth, "tab-width", 8, "tab stop width")
	root.Flags().BoolVar(&cfg.traditional, "traditional-nav", false, "use traditional (non-clamping) horizontal navigation")
	root.Flags().BoolVar(&cfg.autoIndent, "auto-indent", true, "carry leading whitespace forward on Enter")
	root.Flags().BoolVar(&cfg.readOnly, "read-only", false, "open in read-only mode")
	root.Flags().BoolVar(&cfg.widgetTree, "widget-tree", false, "host the control inside a bordered, scrollable texelui widget tree instead of a bare screen")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	ctrl := editor.New()
	ctrl.SetTabWidth(cfg.tabWidth)
	ctrl.SetTraditionalNavigation(cfg.traditional)
	ctrl.SetAutoIndent(cfg.autoIndent)
	ctrl.SetReadOnly(cfg.readOnly)

	if cfg.file != "" {
		data, err := os.ReadFile(cfg.file)
		if err == nil {
			ctrl.InsertTextAtCursor(string(data))
			ctrl.SetModifyState(false)
			ctrl.SetCursorLocation(0, 0)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	timers := adapter.NewTickerTimerHost()
	ctrl.SetCollaborators(&screenWriter{screen: screen}, adapter.SystemClipboard{}, noopScrollBar{}, timers, nil)

	w, h := screen.Size()
	ctrl.Reposition(w, h)

	for {
		timers.Pump()
		ctrl.Paint()
		screen.Show()

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := screen.Size()
			ctrl.Reposition(w, h)
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				if cfg.file != "" {
					_ = os.WriteFile(cfg.file, []byte(bufferText(ctrl)), 0644)
				}
				return nil
			}
			ctrl.HandleKey(ev)
		case *tcell.EventMouse:
			ctrl.HandleMouse(ev)
		}
	}
}

func bufferText(ctrl *editor.Control) string {
	var out string
	for i := 0; i < ctrl.LineCount(); i++ {
		if i > 0 {
			out += "\n"
		}
		out += ctrl.Line(i)
	}
	return out
}

// screenWriter implements editor.ScreenWriter directly over a
// tcell.Screen, for hosting the control with no texelui widget tree at
// all (the reference for texelui/widgets.TextArea's Painter-based
// adapter).
type screenWriter struct {
	screen tcell.Screen
}

func (s *screenWriter) SetClientCell(x, y int, ch rune, attr editor.CellAttr) {
	style := tcell.StyleDefault
	if attr.Selected {
		style = style.Reverse(true)
	}
	s.screen.SetContent(x, y+1, ch, nil, style)
}

func (s *screenWriter) SetNonClientCell(x, y int, ch rune, attr editor.CellAttr) {
	s.screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Bold(true))
}

func (s *screenWriter) SetCursorState(visible bool, shapePct int) {
	if !visible {
		s.screen.HideCursor()
	}
}

func (s *screenWriter) SetCursorLocation(x, y int) {
	s.screen.ShowCursor(x, y+1)
}

func (s *screenWriter) ClientSize() (w, h int) {
	w, h = s.screen.Size()
	return w, h - 1
}

type noopScrollBar struct{}

func (noopScrollBar) SetScrollPosition(top, visible, max int) {}

// runWidgetTree hosts the control inside a core.UIManager tree: a
// widgets.Pane background sits behind a decorative widgets.Border,
// which frames a scroll.ScrollPane clipping and positioning the
// widgets.TextArea leaf that owns the editor.Control. The TextArea
// leaf is registered with and focused by the UIManager directly,
// since Border doesn't forward input to its child.
func runWidgetTree(cfg config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ui := core.NewUIManager()
	w, h := screen.Size()
	ui.Resize(w, h)

	bg := widgets.NewPane(0, 0, w, h, tcell.StyleDefault.Background(tcell.ColorBlack))
	border := widgets.NewBorder(0, 0, w, h, tcell.StyleDefault)
	cr := border.ClientRect()
	pane := scroll.NewScrollPane(cr.X, cr.Y, cr.W, cr.H, tcell.StyleDefault)
	area := widgets.NewTextArea(0, 0, cr.W, cr.H)

	ctrl := area.Control()
	ctrl.SetTabWidth(cfg.tabWidth)
	ctrl.SetTraditionalNavigation(cfg.traditional)
	ctrl.SetAutoIndent(cfg.autoIndent)
	ctrl.SetReadOnly(cfg.readOnly)

	if cfg.file != "" {
		data, err := os.ReadFile(cfg.file)
		if err == nil {
			ctrl.InsertTextAtCursor(string(data))
			ctrl.SetModifyState(false)
			ctrl.SetCursorLocation(0, 0)
		}
	}

	pane.SetChild(area)
	pane.SetContentHeight(cr.H) // editor.Control scrolls its own buffer; the pane never needs to.
	pane.ShowIndicators(false)
	border.SetChild(pane) // repositions/resizes pane to border.ClientRect()

	ui.AddWidget(bg)
	ui.AddWidget(border)
	// area is also registered directly (on top, in z-order) so that
	// UIManager.topmostAt finds it for mouse clicks/drags and so Focus
	// lands on the leaf TextArea itself: Border has no HandleMouse
	// forwarding of its own, and ScrollPane.findFocusedWidget (used for
	// auto-scroll-into-view) walks the tree looking for the focused
	// *child*, not the pane — so the leaf, not the pane, is what
	// UIManager should focus.
	ui.AddWidget(area)
	ui.Focus(area)

	timers := adapter.NewTickerTimerHost()
	ctrl.SetCollaborators(nil, adapter.SystemClipboard{}, noopScrollBar{}, timers, nil)
	area.Resize(cr.W, cr.H)

	for {
		timers.Pump()
		blit(screen, ui.Render())
		screen.Show()

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h = screen.Size()
			ui.Resize(w, h)
			bg.Resize(w, h)
			border.Resize(w, h) // also repositions/resizes pane to the new ClientRect()
			cr := border.ClientRect()
			area.Resize(cr.W, cr.H)
			pane.SetContentHeight(cr.H)
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				if cfg.file != "" {
					_ = os.WriteFile(cfg.file, []byte(bufferText(ctrl)), 0644)
				}
				return nil
			}
			ui.HandleKey(ev)
		case *tcell.EventMouse:
			ui.HandleMouse(ev)
		}
	}
}

// blit copies a UIManager framebuffer onto a tcell.Screen.
func blit(screen tcell.Screen, buf [][]core.Cell) {
	for y, row := range buf {
		for x, cell := range row {
			screen.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
}
