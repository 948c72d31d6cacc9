// Package cli provides the interactive crowdfunding console.
//
// It wires the store and services into a numbered menu loop: guests can
// register, log in, browse, and search projects; a logged-in user can also
// create, edit, and delete their own campaigns.
//
// The loop is started via App.Run(ctx), which blocks until the user exits
// or input reaches EOF. Interactive reads go through small helpers with
// package-level seams so tests can script a whole session.
package cli
