package cli

import (
	"context"
	"fmt"
)

// Run starts the menu loop and blocks until the user exits or input reaches
// EOF. The menu shown depends on the login state; every operation returns to
// the menu regardless of outcome, and the process always exits cleanly.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the Crowdfunding Platform!")

	for {
		var keepGoing bool
		if a.isLoggedIn() {
			a.printUserMenu()
			choice, err := GetSimpleText(a.reader, "\nSelect option", a.out)
			if err != nil {
				break
			}
			keepGoing = a.handleUserChoice(ctx, choice)
		} else {
			a.printGuestMenu()
			choice, err := GetSimpleText(a.reader, "\nSelect option", a.out)
			if err != nil {
				break
			}
			keepGoing = a.handleGuestChoice(ctx, choice)
		}
		if !keepGoing {
			break
		}
	}

	fmt.Fprintln(a.out, "Goodbye!")
}

func (a *App) printGuestMenu() {
	fmt.Fprintln(a.out, "\n=== MAIN MENU ===")
	fmt.Fprintln(a.out, "1. Register")
	fmt.Fprintln(a.out, "2. Login")
	fmt.Fprintln(a.out, "3. View All Projects")
	fmt.Fprintln(a.out, "4. Search Projects by Date")
	fmt.Fprintln(a.out, "0. Exit")
}

func (a *App) printUserMenu() {
	user := a.store.CurrentUser()
	fmt.Fprintf(a.out, "\n=== USER MENU (%s) ===\n", user.FirstName)
	fmt.Fprintln(a.out, "1. Create Project")
	fmt.Fprintln(a.out, "2. View All Projects")
	fmt.Fprintln(a.out, "3. View My Projects")
	fmt.Fprintln(a.out, "4. Edit My Project")
	fmt.Fprintln(a.out, "5. Delete My Project")
	fmt.Fprintln(a.out, "6. Search Projects by Date")
	fmt.Fprintln(a.out, "7. Logout")
	fmt.Fprintln(a.out, "0. Exit")
}

// handleGuestChoice dispatches a guest selection and reports whether the loop
// should continue.
func (a *App) handleGuestChoice(ctx context.Context, choice string) bool {
	switch choice {
	case "1":
		a.Register(ctx)
	case "2":
		a.Login(ctx)
	case "3":
		a.ViewAll(ctx)
	case "4":
		a.SearchByDate(ctx)
	case "0":
		return false
	default:
		fmt.Fprintln(a.out, "Invalid option!")
	}
	return true
}

// handleUserChoice dispatches a logged-in selection and reports whether the
// loop should continue.
func (a *App) handleUserChoice(ctx context.Context, choice string) bool {
	switch choice {
	case "1":
		a.CreateProject(ctx)
	case "2":
		a.ViewAll(ctx)
	case "3":
		a.ViewMine(ctx)
	case "4":
		a.EditProject(ctx)
	case "5":
		a.DeleteProject(ctx)
	case "6":
		a.SearchByDate(ctx)
	case "7":
		a.Logout(ctx)
	case "0":
		return false
	default:
		fmt.Fprintln(a.out, "Invalid option!")
	}
	return true
}
