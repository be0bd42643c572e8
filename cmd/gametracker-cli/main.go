package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Lilac-Rose/gametracker/internal/client"
	"github.com/Lilac-Rose/gametracker/internal/steam"
	"github.com/Lilac-Rose/gametracker/internal/view"
)

const defaultServer = "http://localhost:8080"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: gametracker-cli [-server URL] <command> [args]

Library:
  list                        show the library with saved filters and sort
  search <term>               filter by title, notes, or tags
  sort <key>                  recent, title, title-desc, hours, hours-asc,
                              rating, rating-asc, completion, completion-asc,
                              status, platform
  filter status|platform <v>  set an exact-match filter
  filter clear                drop all filters
  browse                      interactive mode with live search and batch ops
  show <id>                   game detail with achievements and challenges
  add [flags] <title>         add a game (see 'add -h')
  edit <id> [flags]           update a game's fields (see 'edit -h')
  favorite <id>               toggle the favorite marker
  delete <id>                 delete a game after confirmation
  batch-delete <id>...        delete several games after confirmation
  random [flags]              pick a random game (see 'random -h')

Curation and history:
  top10                       show the current top 10
  top10 edit                  edit the ranking as a draft, then save
  stats                       library statistics
  snapshot [date|capture]     day-over-day hours, or record today now

Steam:
  steam search <term>         look a title up in the Steam store
  steam sync <id>             refresh one game's playtime from Steam
  steam sync-all              refresh every Steam-linked game, one at a time
  steam details <appID>       playtime and store tags for a Steam app
  steam import                import the whole Steam library as backlog
  steam achievements <appID>  preview a Steam app's achievement list
  import-achievements <id> <appID>
                              replace a game's achievements from Steam

Session:
  login                       log in and store the session
  logout                      end the session
`)
}

func main() {
	serverURL := flag.String("server", envOr("GAMETRACKER_SERVER", defaultServer), "server base URL")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	a, err := newApp(*serverURL)
	if err != nil {
		fatal(err)
	}

	if err := a.run(args[0], args[1:]); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "Not logged in; run 'gametracker-cli login' first.")
			os.Exit(1)
		}
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "gametracker-cli: %v\n", err)
	os.Exit(1)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func todayUTC() string {
	return time.Now().UTC().Format("2006-01-02")
}

type app struct {
	api       *client.Client
	state     *view.State
	prefs     *view.FilePrefs
	stdin     *bufio.Reader
	stdout    io.Writer
	configDir string
}

func newApp(serverURL string) (*app, error) {
	api, err := client.New(serverURL)
	if err != nil {
		return nil, err
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	configDir = filepath.Join(configDir, "gametracker")

	prefs, err := view.OpenFilePrefs(filepath.Join(configDir, "prefs.json"))
	if err != nil {
		return nil, err
	}

	a := &app{
		api:       api,
		state:     view.NewState(),
		prefs:     prefs,
		stdin:     bufio.NewReader(os.Stdin),
		stdout:    os.Stdout,
		configDir: configDir,
	}
	a.state.LoadPrefs(prefs)

	if token, err := os.ReadFile(a.sessionPath()); err == nil {
		api.SetSessionToken(strings.TrimSpace(string(token)))
		a.state.SetLoggedIn(true)
	}
	return a, nil
}

func (a *app) sessionPath() string {
	return filepath.Join(a.configDir, "session")
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "list":
		return a.cmdList()
	case "search":
		return a.cmdSearch(args)
	case "sort":
		return a.cmdSort(args)
	case "filter":
		return a.cmdFilter(args)
	case "browse":
		return a.cmdBrowse()
	case "show":
		return a.cmdShow(args)
	case "add":
		return a.cmdAdd(args)
	case "edit":
		return a.cmdEdit(args)
	case "favorite":
		return a.cmdFavorite(args)
	case "delete":
		return a.cmdDelete(args)
	case "batch-delete":
		return a.cmdBatchDelete(args)
	case "random":
		return a.cmdRandom(args)
	case "top10":
		return a.cmdTop10(args)
	case "stats":
		return a.cmdStats()
	case "snapshot":
		return a.cmdSnapshot(args)
	case "steam":
		return a.cmdSteam(args)
	case "import-achievements":
		return a.cmdImportAchievements(args)
	case "login":
		return a.cmdLogin()
	case "logout":
		return a.cmdLogout()
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// refresh replaces the cached game list with a fresh fetch.
func (a *app) refresh() error {
	games, err := a.api.ListGames()
	if err != nil {
		return err
	}
	a.state.ReplaceGames(games)
	return nil
}

func (a *app) render() {
	vm := a.state.Derive()
	if vm.Placeholder != "" {
		fmt.Fprintln(a.stdout, vm.Placeholder)
		return
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPLATFORM\tSTATUS\tHOURS\tRATING\tACH")
	for _, card := range vm.Cards {
		marker := ""
		if vm.BatchMode {
			marker = "[ ] "
			if card.Selected {
				marker = "[x] "
			}
		}
		fav := ""
		if card.IsFavorite {
			fav = " *"
		}
		fmt.Fprintf(tw, "%d\t%s%s%s\t%s\t%s\t%.1f\t%s\t%.0f%%\n",
			card.ID, marker, card.Title, fav, card.Platform, card.Status,
			card.Hours, stars(card.Rating), card.Completion)
	}
	tw.Flush()

	if n := a.state.GameCount(); len(vm.Cards) < n {
		fmt.Fprintf(a.stdout, "\n%d of %d games\n", len(vm.Cards), n)
	}
	if vm.BatchMode {
		fmt.Fprintf(a.stdout, "\n%d selected\n", vm.SelectedCount)
	}
}

func stars(rating int) string {
	if rating == 0 {
		return "-"
	}
	return strings.Repeat("*", rating)
}

func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.stdout, "%s [y/N] ", prompt)
	line, err := a.stdin.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("an id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func (a *app) cmdList() error {
	if err := a.refresh(); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *app) cmdSearch(args []string) error {
	a.state.SetSearch(strings.Join(args, " "))
	if err := a.state.SavePrefs(a.prefs); err != nil {
		return err
	}
	return a.cmdList()
}

func (a *app) cmdSort(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: sort <key>")
	}
	key := view.ParseSortKey(args[0])
	if string(key) != args[0] {
		return fmt.Errorf("unknown sort key %q", args[0])
	}
	a.state.SetSortKey(key)
	if err := a.state.SavePrefs(a.prefs); err != nil {
		return err
	}
	return a.cmdList()
}

func (a *app) cmdFilter(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: filter status|platform <value>, or filter clear")
	}
	switch args[0] {
	case "clear":
		a.state.SetSearch("")
		a.state.SetStatus("")
		a.state.SetPlatform("")
	case "status":
		a.state.SetStatus(strings.Join(args[1:], " "))
	case "platform":
		a.state.SetPlatform(strings.Join(args[1:], " "))
	default:
		return fmt.Errorf("unknown filter %q", args[0])
	}
	if err := a.state.SavePrefs(a.prefs); err != nil {
		return err
	}
	return a.cmdList()
}

func (a *app) cmdShow(args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	game, err := a.api.GetGame(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s", game.Title)
	if game.IsFavorite {
		fmt.Fprint(a.stdout, " *")
	}
	fmt.Fprintln(a.stdout)
	if game.Platform != "" {
		fmt.Fprintf(a.stdout, "  Platform:  %s\n", game.Platform)
	}
	if game.Status != "" {
		fmt.Fprintf(a.stdout, "  Status:    %s\n", game.Status)
	}
	fmt.Fprintf(a.stdout, "  Hours:     %.1f\n", game.Hours())
	if game.RatingValue() > 0 {
		fmt.Fprintf(a.stdout, "  Rating:    %s\n", stars(game.RatingValue()))
	}
	if game.CompletionDate != "" {
		fmt.Fprintf(a.stdout, "  Completed: %s\n", game.CompletionDate)
	}
	if len(game.Tags) > 0 {
		fmt.Fprintf(a.stdout, "  Tags:      %s\n", strings.Join(game.Tags, ", "))
	}
	if game.Notes != "" {
		fmt.Fprintf(a.stdout, "  Notes:     %s\n", game.Notes)
	}
	fmt.Fprintf(a.stdout, "  Added:     %s\n", game.CreatedAt.Format("2006-01-02"))

	achievements, err := a.api.ListAchievements(id)
	if err != nil {
		return err
	}
	if len(achievements) > 0 {
		fmt.Fprintf(a.stdout, "\nAchievements (%d/%d):\n", game.UnlockedAchievements, game.TotalAchievements)
		for _, ach := range achievements {
			mark := "[ ]"
			if ach.Unlocked {
				mark = "[x]"
			}
			fmt.Fprintf(a.stdout, "  %s %s", mark, ach.Title)
			if ach.Date != "" {
				fmt.Fprintf(a.stdout, " (%s)", ach.Date)
			}
			fmt.Fprintln(a.stdout)
		}
	}

	challenges, err := a.api.ListChallenges(id, "")
	if err != nil {
		return err
	}
	if len(challenges) > 0 {
		fmt.Fprintln(a.stdout, "\nCompletionist challenges:")
		for _, ch := range challenges {
			mark := "[ ]"
			if ch.Completed {
				mark = "[x]"
			}
			fmt.Fprintf(a.stdout, "  %s %s", mark, ch.Title)
			if ch.Difficulty != nil {
				fmt.Fprintf(a.stdout, " (difficulty %d)", *ch.Difficulty)
			}
			fmt.Fprintln(a.stdout)
		}
	}
	return nil
}

// gameFlags holds the shared flag set for add and edit.
type gameFlags struct {
	fs       *flag.FlagSet
	platform *string
	status   *string
	notes    *string
	tags     *string
	hours    *float64
	rating   *int
	steamApp *int64
}

func newGameFlags(name string) *gameFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return &gameFlags{
		fs:       fs,
		platform: fs.String("platform", "", "platform, e.g. PC or Switch"),
		status:   fs.String("status", "", "Playing, Completed, Backlog, Dropped, or Wishlist"),
		notes:    fs.String("notes", "", "free-form notes"),
		tags:     fs.String("tags", "", "comma-separated tags"),
		hours:    fs.Float64("hours", -1, "hours played"),
		rating:   fs.Int("rating", -1, "rating 0-5"),
		steamApp: fs.Int64("steam-app", 0, "Steam app ID to link"),
	}
}

func (g *gameFlags) params(title string) client.GameParams {
	p := client.GameParams{
		Title:    title,
		Platform: *g.platform,
		Status:   *g.status,
		Notes:    *g.notes,
	}
	if *g.hours >= 0 {
		h := *g.hours
		p.HoursPlayed = &h
	}
	if *g.rating >= 0 {
		r := *g.rating
		p.Rating = &r
	}
	if *g.steamApp > 0 {
		id := *g.steamApp
		p.SteamAppID = &id
	}
	for _, tag := range strings.Split(*g.tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			p.Tags = append(p.Tags, tag)
		}
	}
	return p
}

func (a *app) cmdAdd(args []string) error {
	gf := newGameFlags("add")
	if err := gf.fs.Parse(args); err != nil {
		return err
	}
	title := strings.Join(gf.fs.Args(), " ")
	if title == "" {
		return errors.New("usage: add [flags] <title>")
	}

	game, err := a.api.CreateGame(gf.params(title))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added %q as #%d\n", game.Title, game.ID)
	return nil
}

// cmdEdit updates a game. Unset flags keep the current values, so editing
// one field does not wipe the rest.
func (a *app) cmdEdit(args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	gf := newGameFlags("edit")
	title := gf.fs.String("title", "", "new title")
	completed := gf.fs.String("completed", "", "completion date YYYY-MM-DD, or 'none' to clear")
	if err := gf.fs.Parse(args[1:]); err != nil {
		return err
	}

	current, err := a.api.GetGame(id)
	if err != nil {
		return err
	}

	p := client.GameParams{
		Title:          current.Title,
		Platform:       current.Platform,
		Status:         current.Status,
		Notes:          current.Notes,
		Rating:         current.Rating,
		HoursPlayed:    current.HoursPlayed,
		SteamAppID:     current.SteamAppID,
		CoverURL:       current.CoverURL,
		CompletionDate: current.CompletionDate,
		Tags:           current.Tags,
	}
	if *title != "" {
		p.Title = *title
	}
	if *gf.platform != "" {
		p.Platform = *gf.platform
	}
	if *gf.status != "" {
		p.Status = *gf.status
	}
	if *gf.notes != "" {
		p.Notes = *gf.notes
	}
	if *gf.hours >= 0 {
		h := *gf.hours
		p.HoursPlayed = &h
	}
	if *gf.rating >= 0 {
		r := *gf.rating
		p.Rating = &r
	}
	if *gf.steamApp > 0 {
		appID := *gf.steamApp
		p.SteamAppID = &appID
	}
	if *gf.tags != "" {
		p.Tags = nil
		for _, tag := range strings.Split(*gf.tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				p.Tags = append(p.Tags, tag)
			}
		}
	}
	switch *completed {
	case "":
	case "none":
		p.CompletionDate = ""
	default:
		p.CompletionDate = *completed
	}

	updated, err := a.api.UpdateGame(id, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Updated %q\n", updated.Title)
	return nil
}

func (a *app) cmdFavorite(args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	fav, err := a.api.ToggleFavorite(id)
	if err != nil {
		return err
	}
	if fav {
		fmt.Fprintln(a.stdout, "Marked as favorite")
	} else {
		fmt.Fprintln(a.stdout, "Removed favorite marker")
	}
	return nil
}

func (a *app) cmdDelete(args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	game, err := a.api.GetGame(id)
	if err != nil {
		return err
	}
	if !a.confirm(fmt.Sprintf("Delete %q with its achievements and challenges?", game.Title)) {
		fmt.Fprintln(a.stdout, "Cancelled")
		return nil
	}

	if err := a.api.DeleteGame(id); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted %q\n", game.Title)
	return nil
}

func (a *app) cmdBatchDelete(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: batch-delete <id>...")
	}
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", arg)
		}
		ids = append(ids, id)
	}

	if !a.confirm(fmt.Sprintf("Delete %d games?", len(ids))) {
		fmt.Fprintln(a.stdout, "Cancelled")
		return nil
	}

	result, err := a.api.BatchDelete(ids)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted %d games\n", result.Deleted)
	if result.Failed > 0 {
		fmt.Fprintf(a.stdout, "Failed: %v\n", result.FailedIDs)
	}
	return nil
}

func (a *app) cmdRandom(args []string) error {
	fs := flag.NewFlagSet("random", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	status := fs.String("status", "", "only games with this status")
	platform := fs.String("platform", "", "only games on this platform")
	maxHours := fs.Float64("max-hours", -1, "only games with at most this many hours")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var max *float64
	if *maxHours >= 0 {
		max = maxHours
	}

	game, err := a.api.RandomGame(*status, *platform, max)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 404 {
			fmt.Fprintln(a.stdout, apiErr.Message)
			return nil
		}
		return err
	}

	fmt.Fprintf(a.stdout, "Play %q", game.Title)
	if game.Platform != "" {
		fmt.Fprintf(a.stdout, " on %s", game.Platform)
	}
	fmt.Fprintln(a.stdout)
	return nil
}

func (a *app) cmdStats() error {
	stats, err := a.api.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Games:        %d (%d completed)\n", stats.TotalGames, stats.CompletedGames)
	fmt.Fprintf(a.stdout, "Hours played: %.1f\n", stats.TotalHours)
	if stats.AchievementsTotal > 0 {
		fmt.Fprintf(a.stdout, "Achievements: %d/%d\n", stats.AchievementsUnlocked, stats.AchievementsTotal)
	}

	if len(stats.StatusBreakdown) > 0 {
		fmt.Fprintln(a.stdout, "\nBy status:")
		for status, n := range stats.StatusBreakdown {
			fmt.Fprintf(a.stdout, "  %-12s %d\n", status, n)
		}
	}
	if len(stats.PlatformBreakdown) > 0 {
		fmt.Fprintln(a.stdout, "\nBy platform:")
		for platform, n := range stats.PlatformBreakdown {
			fmt.Fprintf(a.stdout, "  %-12s %d\n", platform, n)
		}
	}
	if len(stats.RecentCompletions) > 0 {
		fmt.Fprintln(a.stdout, "\nRecently completed:")
		for _, rc := range stats.RecentCompletions {
			fmt.Fprintf(a.stdout, "  %s (%s)\n", rc.Title, rc.CompletionDate)
		}
	}
	return nil
}

func (a *app) cmdSnapshot(args []string) error {
	if len(args) > 0 && args[0] == "capture" {
		date, err := a.api.CaptureSnapshot()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Snapshot recorded for %s\n", date)
		return nil
	}

	date := todayUTC()
	if len(args) > 0 {
		date = args[0]
	}

	deltas, err := a.api.DaySnapshot(date)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 404 {
			fmt.Fprintf(a.stdout, "No snapshot for %s\n", date)
			return nil
		}
		return err
	}

	if len(deltas) == 0 {
		fmt.Fprintf(a.stdout, "No play recorded on %s\n", date)
		return nil
	}
	fmt.Fprintf(a.stdout, "Hours gained on %s:\n", date)
	for _, d := range deltas {
		fmt.Fprintf(a.stdout, "  +%.1fh %s (%.1fh total)\n", d.HoursAdded, d.GameTitle, d.TotalHours)
	}
	return nil
}

func (a *app) cmdSteam(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: steam search|sync|sync-all|details|import|achievements ...")
	}
	switch args[0] {
	case "search":
		term := strings.Join(args[1:], " ")
		results, err := a.api.SteamSearch(term)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(a.stdout, "No results")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(a.stdout, "  %d\t%s\n", r.AppID, r.Name)
		}
		return nil

	case "sync":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		game, err := a.api.SteamSync(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Synced %q: %.1f hours\n", game.Title, game.Hours())
		return nil

	case "sync-all":
		return a.steamSyncAll()

	case "details":
		appID, err := parseID(args[1:])
		if err != nil {
			return err
		}
		details, err := a.api.SteamGameDetails(appID)
		if err != nil {
			return err
		}
		if details.HoursPlayed != nil {
			fmt.Fprintf(a.stdout, "Hours played: %.1f\n", *details.HoursPlayed)
		}
		if len(details.Tags) > 0 {
			fmt.Fprintf(a.stdout, "Tags: %s\n", strings.Join(details.Tags, ", "))
		}
		if details.HoursPlayed == nil && len(details.Tags) == 0 {
			fmt.Fprintln(a.stdout, "No details available for that app")
		}
		return nil

	case "import":
		if !a.confirm("Import your whole Steam library as backlog entries?") {
			fmt.Fprintln(a.stdout, "Cancelled")
			return nil
		}
		result, err := a.api.SteamImportLibrary()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Imported %d games, skipped %d already tracked\n", result.Imported, result.Skipped)
		return nil

	case "achievements":
		appID, err := parseID(args[1:])
		if err != nil {
			return err
		}
		achievements, err := a.api.SteamAchievements(appID)
		if err != nil {
			return err
		}
		if len(achievements) == 0 {
			fmt.Fprintln(a.stdout, "No achievements found (is the Steam API key configured?)")
			return nil
		}
		a.printSteamAchievements(achievements)
		return nil

	default:
		return fmt.Errorf("unknown steam command %q", args[0])
	}
}

// steamSyncAll refreshes every Steam-linked game one at a time. A failed
// game is counted and reported; the run continues past it.
func (a *app) steamSyncAll() error {
	games, err := a.api.ListGames()
	if err != nil {
		return err
	}

	var linked []int64
	for _, g := range games {
		if g.SteamAppID != nil {
			linked = append(linked, g.ID)
		}
	}
	if len(linked) == 0 {
		fmt.Fprintln(a.stdout, "No games are linked to Steam")
		return nil
	}
	if !a.confirm(fmt.Sprintf("Refresh playtime for %d linked games?", len(linked))) {
		fmt.Fprintln(a.stdout, "Cancelled")
		return nil
	}

	synced, failed := 0, 0
	for _, id := range linked {
		game, err := a.api.SteamSync(id)
		if err != nil {
			failed++
			fmt.Fprintf(a.stdout, "  #%d failed: %v\n", id, err)
			continue
		}
		synced++
		fmt.Fprintf(a.stdout, "  %s: %.1f hours\n", game.Title, game.Hours())
	}
	fmt.Fprintf(a.stdout, "Synced %d games, %d failed\n", synced, failed)
	return nil
}

func (a *app) printSteamAchievements(achievements []steam.Achievement) {
	unlocked := 0
	for _, ach := range achievements {
		if ach.Unlocked {
			unlocked++
		}
	}
	fmt.Fprintf(a.stdout, "%d achievements, %d unlocked:\n", len(achievements), unlocked)
	for _, ach := range achievements {
		mark := "[ ]"
		if ach.Unlocked {
			mark = "[x]"
		}
		fmt.Fprintf(a.stdout, "  %s %s", mark, ach.Title)
		if ach.UnlockDate != "" {
			fmt.Fprintf(a.stdout, " (%s)", ach.UnlockDate)
		}
		fmt.Fprintln(a.stdout)
	}
}

// cmdImportAchievements previews a Steam app's achievements and, after
// confirmation, replaces the game's achievement list with them.
func (a *app) cmdImportAchievements(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: import-achievements <gameID> <appID>")
	}
	gameID, err := parseID(args[:1])
	if err != nil {
		return err
	}
	appID, err := parseID(args[1:])
	if err != nil {
		return err
	}

	game, err := a.api.GetGame(gameID)
	if err != nil {
		return err
	}
	preview, err := a.api.SteamAchievements(appID)
	if err != nil {
		return err
	}
	if len(preview) == 0 {
		fmt.Fprintln(a.stdout, "Steam returned no achievements for that app")
		return nil
	}

	a.printSteamAchievements(preview)
	if !a.confirm(fmt.Sprintf("Replace the achievement list of %q with these %d?", game.Title, len(preview))) {
		fmt.Fprintln(a.stdout, "Cancelled")
		return nil
	}

	params := make([]client.AchievementParams, 0, len(preview))
	for _, ach := range preview {
		unlocked := ach.Unlocked
		params = append(params, client.AchievementParams{
			Title:       ach.Title,
			Description: ach.Description,
			Date:        ach.UnlockDate,
			Unlocked:    &unlocked,
			IconURL:     ach.IconURL,
		})
	}

	imported, err := a.api.ImportAchievements(gameID, params)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Imported %d achievements\n", imported)
	return nil
}

func (a *app) cmdLogin() error {
	password := os.Getenv("GAMETRACKER_ADMIN_PASSWORD")
	if password == "" {
		fmt.Fprint(a.stdout, "Password: ")
		line, err := a.stdin.ReadString('\n')
		if err != nil {
			return err
		}
		password = strings.TrimSpace(line)
	}

	if err := a.api.Login(password); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid password")
		}
		return err
	}

	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(a.sessionPath(), []byte(a.api.SessionToken()), 0o600); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	a.state.SetLoggedIn(true)
	fmt.Fprintln(a.stdout, "Logged in")
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.api.Logout(); err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if err := os.Remove(a.sessionPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	a.state.SetLoggedIn(false)
	fmt.Fprintln(a.stdout, "Logged out")
	return nil
}
