package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/amsaid/crowdfund/internal/models"
	"github.com/amsaid/crowdfund/internal/projects"
)

// CreateProject walks the user through the creation prompts, aborting on the
// first invalid field.
func (a *App) CreateProject(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n=== CREATE PROJECT ===")

	title, err := getSimpleText(a.reader, "Project Title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, "Title cannot be empty!")
		return nil
	}

	details, err := getSimpleText(a.reader, "Project Details", a.out)
	if err != nil {
		return err
	}
	if details == "" {
		fmt.Fprintln(a.out, "Details cannot be empty!")
		return nil
	}

	rawTarget, err := getSimpleText(a.reader, "Total Target (EGP)", a.out)
	if err != nil {
		return err
	}
	target, convErr := strconv.ParseFloat(rawTarget, 64)
	if convErr != nil {
		fmt.Fprintln(a.out, "Invalid target amount!")
		return nil
	}
	if target <= 0 {
		fmt.Fprintln(a.out, "Target must be positive!")
		return nil
	}

	startDate, err := getSimpleText(a.reader, "Start Date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	if !a.valid.Date(startDate) {
		fmt.Fprintln(a.out, "Invalid start date format!")
		return nil
	}

	endDate, err := getSimpleText(a.reader, "End Date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	if !a.valid.Date(endDate) {
		fmt.Fprintln(a.out, "Invalid end date format!")
		return nil
	}

	if _, err := a.projects.Create(ctx, projects.CreateParams{
		Title:       title,
		Details:     details,
		TotalTarget: target,
		StartDate:   startDate,
		EndDate:     endDate,
	}); err != nil {
		fmt.Fprintf(a.out, "%s\n", capitalizeError(err))
		return nil
	}

	fmt.Fprintln(a.out, "Project created successfully!")
	return nil
}

// ViewAll lists every project with its progress.
func (a *App) ViewAll(ctx context.Context) {
	fmt.Fprintln(a.out, "\n=== ALL PROJECTS ===")

	all := a.projects.All()
	if len(all) == 0 {
		fmt.Fprintln(a.out, "No projects available.")
		return
	}
	for i, p := range all {
		a.renderProject(i+1, p, true)
	}
}

// ViewMine lists only the current user's projects.
func (a *App) ViewMine(ctx context.Context) {
	fmt.Fprintln(a.out, "\n=== MY PROJECTS ===")

	mine, err := a.projects.Mine(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Please login first!")
		return
	}
	if len(mine) == 0 {
		fmt.Fprintln(a.out, "You haven't created any projects yet.")
		return
	}
	for i, p := range mine {
		a.renderProject(i+1, p, false)
	}
}

// EditProject selects one of the user's own projects by 1-based index and
// applies a partial update: blank input keeps the existing value, and a
// malformed or non-positive target prints a warning instead of failing the
// whole operation.
func (a *App) EditProject(ctx context.Context) error {
	mine, err := a.projects.Mine(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Please login first!")
		return nil
	}
	if len(mine) == 0 {
		fmt.Fprintln(a.out, "You have no projects to edit!")
		return nil
	}

	fmt.Fprintln(a.out, "\n=== EDIT PROJECT ===")
	index, ok, err := a.selectOwnProject(mine)
	if err != nil || !ok {
		return err
	}
	project := mine[index]

	fmt.Fprintf(a.out, "\nEditing: %s\n", project.Title)
	fmt.Fprintln(a.out, "Press Enter to keep current value.")

	newTitle, err := getSimpleText(a.reader, fmt.Sprintf("Title (%s)", project.Title), a.out)
	if err != nil {
		return err
	}
	newDetails, err := getSimpleText(a.reader, fmt.Sprintf("Details (%s)", project.Details), a.out)
	if err != nil {
		return err
	}
	rawTarget, err := getSimpleText(a.reader, fmt.Sprintf("Target (%g)", project.TotalTarget), a.out)
	if err != nil {
		return err
	}

	changes := projects.EditParams{Title: newTitle, Details: newDetails}
	if rawTarget != "" {
		target, convErr := strconv.ParseFloat(rawTarget, 64)
		switch {
		case convErr != nil:
			fmt.Fprintln(a.out, "Invalid target format, keeping current value.")
		case target <= 0:
			fmt.Fprintln(a.out, "Invalid target, keeping current value.")
		default:
			changes.Target = &target
		}
	}

	if _, err := a.projects.Edit(ctx, index, changes); err != nil {
		fmt.Fprintf(a.out, "%s\n", capitalizeError(err))
		return nil
	}
	fmt.Fprintln(a.out, "Project updated successfully!")
	return nil
}

// DeleteProject selects one of the user's own projects and removes it after
// an explicit "y" confirmation.
func (a *App) DeleteProject(ctx context.Context) error {
	mine, err := a.projects.Mine(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Please login first!")
		return nil
	}
	if len(mine) == 0 {
		fmt.Fprintln(a.out, "You have no projects to delete!")
		return nil
	}

	fmt.Fprintln(a.out, "\n=== DELETE PROJECT ===")
	index, ok, err := a.selectOwnProject(mine)
	if err != nil || !ok {
		return err
	}
	project := mine[index]

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Are you sure you want to delete '%s'? (y/N)", project.Title), a.out)
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		fmt.Fprintln(a.out, "Deletion cancelled.")
		return nil
	}

	if _, err := a.projects.Delete(ctx, index); err != nil {
		fmt.Fprintf(a.out, "%s\n", capitalizeError(err))
		return nil
	}
	fmt.Fprintln(a.out, "Project deleted successfully!")
	return nil
}

// SearchByDate prompts for a date and lists every project running on it.
func (a *App) SearchByDate(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n=== SEARCH PROJECTS BY DATE ===")

	date, err := getSimpleText(a.reader, "Enter date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}

	found, searchErr := a.projects.SearchByDate(ctx, date)
	if searchErr != nil {
		fmt.Fprintln(a.out, "Invalid date format!")
		return nil
	}
	if len(found) == 0 {
		fmt.Fprintf(a.out, "No projects found running on %s\n", date)
		return nil
	}

	fmt.Fprintf(a.out, "\nProjects running on %s:\n", date)
	for i, p := range found {
		a.renderProject(i+1, p, true)
	}
	return nil
}

// selectOwnProject lists the user's projects and reads a 1-based selection.
// The returned index is zero-based; ok is false when the input was invalid
// (a message has already been printed).
func (a *App) selectOwnProject(mine []*models.Project) (int, bool, error) {
	fmt.Fprintln(a.out, "Your projects:")
	for i, p := range mine {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, p.Title)
	}

	raw, err := getSimpleText(a.reader, "Select project number", a.out)
	if err != nil {
		return 0, false, err
	}
	choice, convErr := strconv.Atoi(raw)
	if convErr != nil {
		fmt.Fprintln(a.out, "Invalid input!")
		return 0, false, nil
	}
	index := choice - 1
	if index < 0 || index >= len(mine) {
		fmt.Fprintln(a.out, "Invalid selection!")
		return 0, false, nil
	}
	return index, true, nil
}

func (a *App) renderProject(n int, p *models.Project, withOwner bool) {
	fmt.Fprintf(a.out, "\n%d. %s\n", n, p.Title)
	if withOwner {
		fmt.Fprintf(a.out, "   Owner: %s\n", p.OwnerEmail)
	}
	fmt.Fprintf(a.out, "   Details: %s\n", p.Details)
	fmt.Fprintf(a.out, "   Target: %.2f EGP\n", p.TotalTarget)
	fmt.Fprintf(a.out, "   Progress: %.2f EGP (%.1f%%)\n", p.CurrentAmount, p.Progress())
	fmt.Fprintf(a.out, "   Duration: %s to %s\n", p.StartDate, p.EndDate)
}

// capitalizeError upper-cases the first letter of a service error for console
// display and appends the usual exclamation mark.
func capitalizeError(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	upper := strings.ToUpper(msg[:1]) + msg[1:]
	if !strings.HasSuffix(upper, "!") {
		upper += "!"
	}
	return upper
}
