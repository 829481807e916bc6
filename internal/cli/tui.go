package cli

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mfriis/ghostlap/internal/ghost"
	"github.com/mfriis/ghostlap/internal/track"
)

const (
	tuiTick = 33 * time.Millisecond

	// World-to-cell scales. Terminal cells are roughly twice as tall as
	// wide, so the vertical scale is coarser.
	cellScaleX = 4.0
	cellScaleY = 8.0

	trackHalfWidth = 60.0
)

// runTUI animates a replay in the terminal: the course scrolls past a
// camera locked to the ghost. Quit with q, ESC or Ctrl-C.
func runTUI(rec *ghost.Record, interval, speed float64, seed int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	tr := track.New(seed)
	p := ghost.NewPlayback(rec.Frames, "", interval)

	ticker := time.NewTicker(tuiTick)
	defer ticker.Stop()

	dt := tuiTick.Seconds() * speed
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			p.Update(dt)
			drawFrame(screen, tr, p)
			if p.Finished() {
				// Hold the final frame briefly so the finish is visible.
				time.Sleep(600 * time.Millisecond)
				return nil
			}
		}
	}
}

func drawFrame(screen tcell.Screen, tr *track.Track, p *ghost.Playback) {
	screen.Clear()
	w, h := screen.Size()
	if w < 10 || h < 5 {
		screen.Show()
		return
	}

	edge := tcell.StyleDefault.Foreground(tcell.ColorGray)
	ghostStyle := tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	hud := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	// Camera: ghost fixed at the vertical third of the screen, course
	// scrolling beneath it.
	camRow := h / 3
	for row := 0; row < h; row++ {
		worldY := p.Y + float64(row-camRow)*cellScaleY
		center := tr.CenterX(worldY)
		left := int(float64(w)/2 + (center-trackHalfWidth-p.X)/cellScaleX)
		right := int(float64(w)/2 + (center+trackHalfWidth-p.X)/cellScaleX)
		if left >= 0 && left < w {
			screen.SetContent(left, row, '|', nil, edge)
		}
		if right >= 0 && right < w {
			screen.SetContent(right, row, '|', nil, edge)
		}
	}

	// The ghost sits at the camera anchor by construction.
	screen.SetContent(w/2, camRow, ghostRune(p.Rotation), nil, ghostStyle)

	status := fmt.Sprintf(" t=%6.2fs  speed=%4.2f  alpha=%4.2f  (q to quit) ",
		p.Elapsed, p.Speed, p.Opacity)
	for i, r := range status {
		if i >= w {
			break
		}
		screen.SetContent(i, h-1, r, nil, hud)
	}

	screen.Show()
}

// ghostRune picks an arrow glyph for the current heading. Zero heading
// points down the course (+Y, toward the top of the screen scroll).
func ghostRune(rotation float64) rune {
	switch {
	case rotation > 0.35:
		return '>'
	case rotation < -0.35:
		return '<'
	default:
		return '^'
	}
}
