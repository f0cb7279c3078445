package cli

import (
	"flag"
	"fmt"
	"strings"

	"noter/internal/notes/fs"
	"noter/internal/notes/models"
)

func runList(args []string, env Env) int {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	flags.SetOutput(env.Err)
	asJSON := flags.Bool("json", false, "Print the board as JSON")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	engine, err := openBoard(env)
	if err != nil {
		fmt.Fprintf(env.Err, "Error loading notes: %v\n", err)
		return 1
	}

	if *asJSON {
		data, err := engine.ExportNotes()
		if err != nil {
			fmt.Fprintf(env.Err, "Error encoding notes: %v\n", err)
			return 1
		}
		fmt.Fprintln(env.Out, string(data))
		return 0
	}

	notes := engine.Notes().All()
	if len(notes) == 0 {
		fmt.Fprintln(env.Out, "No notes found.")
		return 0
	}

	for _, n := range notes {
		printNote(env, n)
	}
	fmt.Fprintf(env.Out, "\n%d note(s)\n", len(notes))
	return 0
}

func runAdd(args []string, env Env) int {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	flags.SetOutput(env.Err)
	subject := flags.String("s", "", "Note subject")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	message := strings.Join(flags.Args(), " ")
	if message == "" && *subject == "" {
		fmt.Fprintln(env.Err, "Error: note text or subject required")
		fmt.Fprintln(env.Err, `Usage: noter add -s "Subject" "Note text"`)
		return 1
	}

	engine, err := openBoard(env)
	if err != nil {
		fmt.Fprintf(env.Err, "Error loading notes: %v\n", err)
		return 1
	}

	n := engine.AddNote(message, *subject)
	if err := saveBoard(env, engine); err != nil {
		fmt.Fprintf(env.Err, "Error saving notes: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.Out, "Added: %s\n", title(n))
	fmt.Fprintf(env.Out, "ID: %s\n", n.ID)
	return 0
}

func runDelete(args []string, env Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.Err, "Error: note ID required")
		fmt.Fprintln(env.Err, "Usage: noter delete <note-id>")
		return 1
	}

	engine, err := openBoard(env)
	if err != nil {
		fmt.Fprintf(env.Err, "Error loading notes: %v\n", err)
		return 1
	}

	n, err := findNoteByPartialID(engine.Notes().All(), args[0])
	if err != nil {
		fmt.Fprintf(env.Err, "Error: %v\n", err)
		return 1
	}

	if err := engine.DeleteNote(n.ID); err != nil {
		fmt.Fprintf(env.Err, "Error deleting note: %v\n", err)
		return 1
	}
	if err := saveBoard(env, engine); err != nil {
		fmt.Fprintf(env.Err, "Error saving notes: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.Out, "Deleted: %s\n", title(n))
	return 0
}

func runExport(args []string, env Env) int {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	flags.SetOutput(env.Err)
	dir := flags.String("dir", env.BackupDir, "Directory to write the backup to")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	engine, err := openBoard(env)
	if err != nil {
		fmt.Fprintf(env.Err, "Error loading notes: %v\n", err)
		return 1
	}

	path, err := fs.ExportFile(*dir, engine.Notes().All(), env.Now())
	if err != nil {
		fmt.Fprintf(env.Err, "Error exporting notes: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.Out, "Your notes are saved as %s\n", path)
	return 0
}

func runImport(args []string, env Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.Err, "Error: backup file required")
		fmt.Fprintln(env.Err, "Usage: noter import <file.json>")
		return 1
	}

	notes, err := fs.ImportFile(args[0], env.Now())
	if err != nil {
		fmt.Fprintf(env.Err, "Failed to load notes: %v\n", err)
		return 1
	}

	return replaceBoard(env, notes)
}

func runImportMarkdown(args []string, env Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.Err, "Error: directory required")
		fmt.Fprintln(env.Err, "Usage: noter import-md <dir>")
		return 1
	}

	notes, err := fs.ReadMarkdownDir(args[0], env.Now())
	if err != nil {
		fmt.Fprintf(env.Err, "Failed to load notes: %v\n", err)
		return 1
	}
	return replaceBoard(env, notes)
}

// replaceBoard swaps the saved board for notes
func replaceBoard(env Env, notes []models.Note) int {
	engine, err := openBoard(env)
	if err != nil {
		fmt.Fprintf(env.Err, "Error loading notes: %v\n", err)
		return 1
	}
	engine.Notes().Replace(notes)
	if err := saveBoard(env, engine); err != nil {
		fmt.Fprintf(env.Err, "Error saving notes: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.Out, "Successfully loaded %d note(s).\n", len(notes))
	return 0
}

func runMarkdown(args []string, env Env) int {
	flags := flag.NewFlagSet("markdown", flag.ContinueOnError)
	flags.SetOutput(env.Err)
	dir := flags.String("dir", env.BackupDir, "Directory to write markdown files to")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	engine, err := openBoard(env)
	if err != nil {
		fmt.Fprintf(env.Err, "Error loading notes: %v\n", err)
		return 1
	}

	paths, err := fs.ExportMarkdown(*dir, engine.Notes().All())
	if err != nil {
		fmt.Fprintf(env.Err, "Error writing markdown: %v\n", err)
		return 1
	}
	for _, p := range paths {
		fmt.Fprintln(env.Out, p)
	}
	fmt.Fprintf(env.Out, "\n%d file(s)\n", len(paths))
	return 0
}

func runSnapshot(args []string, env Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.Err, "Error: output path required")
		fmt.Fprintln(env.Err, "Usage: noter snapshot <board.png>")
		return 1
	}

	engine, err := openBoard(env)
	if err != nil {
		fmt.Fprintf(env.Err, "Error loading notes: %v\n", err)
		return 1
	}

	if err := fs.WriteSnapshot(args[0], engine.Notes().All()); err != nil {
		fmt.Fprintf(env.Err, "Error writing snapshot: %v\n", err)
		return 1
	}
	fmt.Fprintf(env.Out, "Snapshot written to %s\n", args[0])
	return 0
}

func printNote(env Env, n models.Note) {
	fmt.Fprintf(env.Out, "[%s] %s  (%.0f,%.0f %.0fx%.0f) %s\n",
		shortID(n.ID), title(n), n.X, n.Y, n.Width, n.Height, n.Color)

	for _, line := range strings.Split(n.PlainText(), "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintf(env.Out, "        %s\n", line)
	}
}

func title(n models.Note) string {
	if n.Subject != "" {
		return n.Subject
	}
	for _, item := range n.Content {
		switch item.Type {
		case models.ContentText:
			if item.Value != "" {
				return firstLine(item.Value)
			}
		case models.ContentCheckbox:
			if item.Text != "" {
				return firstLine(item.Text)
			}
		}
	}
	return "(untitled)"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

func findNoteByPartialID(notes []models.Note, partialID string) (models.Note, error) {
	var matches []models.Note
	for _, n := range notes {
		if n.ID == partialID || (len(partialID) >= 4 && strings.HasPrefix(n.ID, partialID)) {
			matches = append(matches, n)
		}
	}

	if len(matches) == 0 {
		return models.Note{}, fmt.Errorf("no note found with ID: %s", partialID)
	}
	if len(matches) > 1 {
		return models.Note{}, fmt.Errorf("multiple notes match ID '%s', please be more specific", partialID)
	}
	return matches[0], nil
}
