// Command fogterm is a hot-seat fog-of-war chess client for the terminal.
// Players take turns on one keyboard; between turns the board is covered so
// the next player only ever sees their own side's view.
package main

import (
	"fmt"
	"os"

	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/gdamore/tcell/v2"
)

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fogterm: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "fogterm: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ui := newUI(model.NewGame())
	for {
		ui.draw(screen)
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !ui.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ui.handleMouse(ev)
		}
	}
}
