// homectl is a command-line client for the Eterna Home API. It keeps its
// session and scope selections under the user config directory, so separate
// invocations behave like one long-lived client.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Flv72S/Eterna-Home-sub001/internal/client"
	"github.com/Flv72S/Eterna-Home-sub001/internal/client/credstore"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/logger"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: homectl [flags] <command> [args]

Commands:
  login -email <email> -password <password>   authenticate and store the session
  logout                                      revoke the session and clear local state
  status                                      show session, tenant, and house scope
  houses                                      list the houses of the active tenant
  use-house <id>                              select the active house (or: use-house -first)
  documents                                   list documents of the active house

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	server := flag.String("server", envOr("ETERNA_SERVER", "http://localhost:8080"), "API base URL")
	stateDir := flag.String("state", "", "state directory (default: <user config dir>/eterna-home)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	dir := *stateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			fatal("cannot determine config dir: %v", err)
		}
		dir = filepath.Join(base, "eterna-home")
	}
	store, err := credstore.NewFileStore(dir)
	if err != nil {
		fatal("cannot open state dir: %v", err)
	}

	app := client.New(*server, store, logger.New())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	app.Initialize(ctx)

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "login":
		runLogin(ctx, app, args)
	case "logout":
		runLogout(ctx, app)
	case "status":
		runStatus(app)
	case "houses":
		runHouses(ctx, app)
	case "use-house":
		runUseHouse(ctx, app, args)
	case "documents":
		runDocuments(ctx, app)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

func runLogin(ctx context.Context, app *client.App, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args) //nolint:errcheck // ExitOnError

	if *email == "" || *password == "" {
		fatal("login requires -email and -password")
	}
	if err := app.Session.Login(ctx, *email, *password); err != nil {
		fatal("login failed: %v", err)
	}
	user, _ := app.Session.User()
	fmt.Printf("logged in as %s (%s)\n", user.Username, user.Email)

	// make the first house list available before the process exits
	if err := app.Houses.Refresh(ctx); err == nil {
		if houses := app.Houses.Houses(); len(houses) == 1 {
			app.Houses.SelectFirst()
		}
	}
	printScope(app)
}

func runLogout(ctx context.Context, app *client.App) {
	if err := app.Session.Logout(ctx); err != nil {
		fatal("logout failed: %v", err)
	}
	fmt.Println("logged out")
}

func runStatus(app *client.App) {
	if !app.Session.IsAuthenticated() {
		fmt.Println("not logged in")
		return
	}
	user, _ := app.Session.User()
	fmt.Printf("user:    %s (%s)\n", user.Username, user.Email)
	if tenant, ok := app.Tenants.Active(); ok {
		fmt.Printf("tenant:  %s\n", tenant.String())
	} else {
		fmt.Println("tenant:  none selected")
	}
	printScope(app)
}

func runHouses(ctx context.Context, app *client.App) {
	requireSession(app)
	if err := app.Houses.Refresh(ctx); err != nil {
		fatal("could not load houses: %v", err)
	}
	houses := app.Houses.Houses()
	if len(houses) == 0 {
		fmt.Println("no houses in the active tenant")
		return
	}
	active, _ := app.Houses.Active()
	for _, h := range houses {
		marker := " "
		if h.ID == active {
			marker = "*"
		}
		state := ""
		if !h.IsActive {
			state = " (deactivated)"
		}
		fmt.Printf("%s %-4s %-24s %s%s\n", marker, h.ID.String(), h.Name, h.Role, state)
	}
}

func runUseHouse(ctx context.Context, app *client.App, args []string) {
	requireSession(app)
	fs := flag.NewFlagSet("use-house", flag.ExitOnError)
	first := fs.Bool("first", false, "select the first available house")
	fs.Parse(args) //nolint:errcheck // ExitOnError

	if err := app.Houses.Refresh(ctx); err != nil {
		fatal("could not load houses: %v", err)
	}

	if *first {
		app.Houses.SelectFirst()
	} else {
		if fs.NArg() != 1 {
			fatal("use-house requires a house id or -first")
		}
		houseID, err := id.ParseHouseID(fs.Arg(0))
		if err != nil {
			fatal("bad house id: %v", err)
		}
		if err := app.Houses.SetActive(houseID); err != nil {
			fatal("cannot select house: %v", err)
		}
	}
	printScope(app)
}

func runDocuments(ctx context.Context, app *client.App) {
	requireSession(app)
	if !app.Houses.HasActiveHouse() {
		fatal("no active house; run use-house first")
	}
	docs, err := app.API.ListDocuments(ctx)
	if err != nil {
		fatal("could not load documents: %v", err)
	}
	if len(docs) == 0 {
		fmt.Println("no documents in the active house")
		return
	}
	for _, d := range docs {
		fmt.Printf("%-36s %-28s %s\n", d.ID, d.Name, d.MimeType)
	}
}

func printScope(app *client.App) {
	if entry, ok := app.Houses.ActiveHouse(); ok {
		fmt.Printf("house:   %s (%s, %s)\n", entry.Name, entry.ID.String(), entry.Role)
		return
	}
	if app.Houses.HasActiveHouse() {
		houseID, _ := app.Houses.Active()
		fmt.Printf("house:   %s (unconfirmed)\n", houseID.String())
		return
	}
	fmt.Println("house:   none selected")
}

func requireSession(app *client.App) {
	if !app.Session.IsAuthenticated() {
		fatal("not logged in; run homectl login first")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
