package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amsaid/crowdfund/internal/common"
)

const projectFieldCount = 8

// DateLayout is the calendar-date format used by project start and end dates.
const DateLayout = "2006-01-02"

// Project is a crowdfunding campaign. OwnerEmail references a User by value;
// nothing prevents a project from outliving its owner record.
//
// CurrentAmount is loaded, displayed, and round-tripped but never mutated:
// no pledge operation exists.
type Project struct {
	Title         string
	Details       string
	TotalTarget   float64
	StartDate     string
	EndDate       string
	OwnerEmail    string
	CreatedAt     string
	CurrentAmount float64
}

// Record serializes the project as a single pipe-delimited line (without the
// trailing newline).
func (p *Project) Record() string {
	return strings.Join([]string{
		p.Title,
		p.Details,
		formatAmount(p.TotalTarget),
		p.StartDate,
		p.EndDate,
		p.OwnerEmail,
		p.CreatedAt,
		formatAmount(p.CurrentAmount),
	}, FieldSeparator)
}

// ParseProject decodes a pipe-delimited project line. A line with the wrong
// field count yields an error wrapping common.ErrInvalidRecord; an unparsable
// amount yields the underlying strconv error.
func ParseProject(line string) (*Project, error) {
	parts := strings.Split(line, FieldSeparator)
	if len(parts) != projectFieldCount {
		return nil, fmt.Errorf("%w: project line has %d fields, want %d", common.ErrInvalidRecord, len(parts), projectFieldCount)
	}
	target, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing total target: %w", err)
	}
	current, err := strconv.ParseFloat(parts[7], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing current amount: %w", err)
	}
	return &Project{
		Title:         parts[0],
		Details:       parts[1],
		TotalTarget:   target,
		StartDate:     parts[3],
		EndDate:       parts[4],
		OwnerEmail:    parts[5],
		CreatedAt:     parts[6],
		CurrentAmount: current,
	}, nil
}

// Progress returns the pledged percentage of the target. A non-positive
// target (possible only through direct file edits) reports zero instead of
// a non-finite value.
func (p *Project) Progress() float64 {
	if p.TotalTarget <= 0 {
		return 0
	}
	return p.CurrentAmount / p.TotalTarget * 100
}

// RunsOn reports whether day falls inside [StartDate, EndDate], inclusive on
// both ends. Records with unparsable dates never match.
func (p *Project) RunsOn(day time.Time) bool {
	start, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse(DateLayout, p.EndDate)
	if err != nil {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
