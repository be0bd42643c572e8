package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/Lilac-Rose/gametracker/internal/client"
	"github.com/Lilac-Rose/gametracker/internal/model"
	"github.com/Lilac-Rose/gametracker/internal/view"
)

func browseHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  /<term>            search as you type (debounced); bare / clears
  sort <key>         change the sort order
  status <value>     filter by status; empty value clears
  platform <value>   filter by platform; empty value clears
  clear              drop search and filters
  fav <id>           toggle a favorite
  batch              enter batch-select mode
  sel <id>           toggle a selection (batch mode)
  delete             delete the selected games (batch mode)
  cancel             leave batch mode without deleting
  refresh            refetch the library
  quit               save view preferences and exit
`)
}

// cmdBrowse runs the interactive library view. Search input is debounced the
// way a UI search box would be, so the redraw fires once typing settles.
func (a *app) cmdBrowse() error {
	if err := a.refresh(); err != nil {
		return err
	}

	deb := view.NewDebouncer(view.DefaultDebounce)
	defer deb.Stop()

	// The debouncer fires on a timer goroutine; the mutex keeps its redraw
	// from interleaving with prompt-loop output.
	var mu sync.Mutex
	redraw := func() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(a.stdout)
		a.render()
	}

	a.render()
	browseHelp(a.stdout)

	for {
		fmt.Fprint(a.stdout, "> ")
		line, err := a.stdin.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			a.state.SetSearch(strings.TrimPrefix(line, "/"))
			deb.Trigger(redraw)
			continue
		}

		fields := strings.Fields(line)
		cmd, rest := fields[0], fields[1:]

		switch cmd {
		case "quit", "q", "exit":
			deb.Stop()
			if err := a.state.SavePrefs(a.prefs); err != nil {
				return err
			}
			return nil

		case "help", "?":
			browseHelp(a.stdout)

		case "sort":
			if len(rest) == 0 {
				fmt.Fprintln(a.stdout, "usage: sort <key>")
				continue
			}
			key := view.ParseSortKey(rest[0])
			if string(key) != rest[0] {
				fmt.Fprintf(a.stdout, "unknown sort key %q\n", rest[0])
				continue
			}
			a.state.SetSortKey(key)
			redraw()

		case "status":
			a.state.SetStatus(strings.Join(rest, " "))
			redraw()

		case "platform":
			a.state.SetPlatform(strings.Join(rest, " "))
			redraw()

		case "clear":
			a.state.SetSearch("")
			a.state.SetStatus("")
			a.state.SetPlatform("")
			redraw()

		case "refresh":
			if err := a.refresh(); err != nil {
				fmt.Fprintf(a.stdout, "refresh failed: %v\n", err)
				continue
			}
			redraw()

		case "fav":
			a.browseFavorite(rest, redraw)

		case "batch":
			a.state.EnterBatchMode()
			redraw()

		case "sel":
			if !a.state.BatchMode() {
				fmt.Fprintln(a.stdout, "enter batch mode first")
				continue
			}
			id, err := parseID(rest)
			if err != nil {
				fmt.Fprintln(a.stdout, err)
				continue
			}
			a.state.ToggleSelected(id)
			redraw()

		case "delete":
			a.browseBatchDelete(redraw)

		case "cancel":
			a.state.ExitBatchMode()
			redraw()

		default:
			fmt.Fprintf(a.stdout, "unknown command %q; try 'help'\n", cmd)
		}
	}
}

// browseFavorite toggles a favorite optimistically: the view flips first and
// reverts if the server disagrees.
func (a *app) browseFavorite(args []string, redraw func()) {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.stdout, err)
		return
	}
	if a.state.Game(id) == nil {
		fmt.Fprintf(a.stdout, "no game #%d in the library\n", id)
		return
	}

	flip := func(g *model.Game) {
		g.IsFavorite = !g.IsFavorite
	}
	a.state.PatchGame(id, flip)
	redraw()

	if _, err := a.api.ToggleFavorite(id); err != nil {
		a.state.PatchGame(id, flip)
		if errors.Is(err, client.ErrUnauthorized) {
			a.state.SetLoggedIn(false)
			fmt.Fprintln(a.stdout, "Not logged in; favorite reverted")
		} else {
			fmt.Fprintf(a.stdout, "favorite failed: %v (reverted)\n", err)
		}
		redraw()
	}
}

func (a *app) browseBatchDelete(redraw func()) {
	if !a.state.BatchMode() {
		fmt.Fprintln(a.stdout, "enter batch mode first")
		return
	}
	ids := a.state.Selected()
	if len(ids) == 0 {
		fmt.Fprintln(a.stdout, "nothing selected")
		return
	}
	if !a.confirm(fmt.Sprintf("Delete %d selected games?", len(ids))) {
		return
	}

	result, err := a.api.BatchDelete(ids)
	if err != nil {
		fmt.Fprintf(a.stdout, "batch delete failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.stdout, "Deleted %d games\n", result.Deleted)
	if result.Failed > 0 {
		fmt.Fprintf(a.stdout, "Failed: %v\n", result.FailedIDs)
	}

	if err := a.refresh(); err != nil {
		fmt.Fprintf(a.stdout, "refresh failed: %v\n", err)
	}
	a.state.ExitBatchMode()
	redraw()
}

func (a *app) cmdTop10(args []string) error {
	if len(args) > 0 && args[0] == "edit" {
		return a.editTop10()
	}

	entries, err := a.api.Top10()
	if err != nil {
		return err
	}
	printTop10(a.stdout, entries)
	return nil
}

func printTop10(w io.Writer, entries []model.Top10Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No favorites ranked yet")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%2d. %s", e.Position, e.GameTitle)
		if e.Reason != "" {
			fmt.Fprintf(w, " (%s)", e.Reason)
		}
		fmt.Fprintln(w)
	}
}

// editTop10 edits the ranking as a draft. Nothing reaches the server until
// save posts the whole list at once; quit discards pending edits.
func (a *app) editTop10() error {
	saved, err := a.api.Top10()
	if err != nil {
		return err
	}
	if err := a.refresh(); err != nil {
		return err
	}

	draft := a.state.Draft()
	draft.Load(saved)

	fmt.Fprintln(a.stdout, "Editing the top 10. Commands: add <id> [reason], rm <id>, move <id> <pos>, reason <id> <text>, show, save, quit")
	printTop10(a.stdout, draft.Entries())

	for {
		fmt.Fprint(a.stdout, "top10> ")
		line, err := a.stdin.ReadString('\n')
		if err != nil {
			return nil
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "q":
			return nil

		case "show":
			printTop10(a.stdout, draft.Entries())

		case "add":
			id, err := parseID(fields[1:])
			if err != nil {
				fmt.Fprintln(a.stdout, err)
				continue
			}
			game := a.state.Game(id)
			if game == nil {
				fmt.Fprintf(a.stdout, "no game #%d in the library\n", id)
				continue
			}
			reason := strings.Join(fields[2:], " ")
			if err := draft.Add(id, game.Title, reason); err != nil {
				fmt.Fprintln(a.stdout, err)
				continue
			}
			printTop10(a.stdout, draft.Entries())

		case "rm":
			id, err := parseID(fields[1:])
			if err != nil {
				fmt.Fprintln(a.stdout, err)
				continue
			}
			if !draft.Remove(id) {
				fmt.Fprintf(a.stdout, "#%d is not ranked\n", id)
				continue
			}
			printTop10(a.stdout, draft.Entries())

		case "move":
			if len(fields) < 3 {
				fmt.Fprintln(a.stdout, "usage: move <id> <position>")
				continue
			}
			id, err := parseID(fields[1:2])
			if err != nil {
				fmt.Fprintln(a.stdout, err)
				continue
			}
			pos, err := strconv.Atoi(fields[2])
			if err != nil || pos < 1 {
				fmt.Fprintf(a.stdout, "invalid position %q\n", fields[2])
				continue
			}
			if !draft.Move(id, pos) {
				fmt.Fprintf(a.stdout, "#%d is not ranked\n", id)
				continue
			}
			printTop10(a.stdout, draft.Entries())

		case "reason":
			if len(fields) < 3 {
				fmt.Fprintln(a.stdout, "usage: reason <id> <text>")
				continue
			}
			id, err := parseID(fields[1:2])
			if err != nil {
				fmt.Fprintln(a.stdout, err)
				continue
			}
			if !draft.SetReason(id, strings.Join(fields[2:], " ")) {
				fmt.Fprintf(a.stdout, "#%d is not ranked\n", id)
				continue
			}
			printTop10(a.stdout, draft.Entries())

		case "save":
			if !a.confirm(fmt.Sprintf("Replace the saved top 10 with these %d entries?", draft.Len())) {
				continue
			}
			savedNow, err := a.api.ReplaceTop10(draft.Entries())
			if err != nil {
				fmt.Fprintf(a.stdout, "save failed: %v\n", err)
				continue
			}
			draft.Load(savedNow)
			fmt.Fprintln(a.stdout, "Saved")
			printTop10(a.stdout, draft.Entries())

		default:
			fmt.Fprintf(a.stdout, "unknown command %q\n", fields[0])
		}
	}
}
