package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"noter/internal/interaction"
	"noter/internal/notes/collection"
	"noter/internal/storage"
)

// Env carries what the commands need from main
type Env struct {
	Store     storage.Store
	BackupDir string
	Now       func() time.Time
	Random    *rand.Rand
	Out       io.Writer
	Err       io.Writer
}

func (e *Env) defaults() {
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.Random == nil {
		e.Random = rand.New(rand.NewSource(e.Now().UnixNano()))
	}
	if e.Out == nil {
		e.Out = os.Stdout
	}
	if e.Err == nil {
		e.Err = os.Stderr
	}
}

// Run executes the CLI with the given arguments and returns the exit code
func Run(args []string, env Env) int {
	env.defaults()

	if len(args) == 0 {
		printUsage(env.Out)
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "list", "ls", "l":
		return runList(cmdArgs, env)
	case "add", "a":
		return runAdd(cmdArgs, env)
	case "delete", "rm", "del":
		return runDelete(cmdArgs, env)
	case "export":
		return runExport(cmdArgs, env)
	case "import":
		return runImport(cmdArgs, env)
	case "markdown", "md":
		return runMarkdown(cmdArgs, env)
	case "import-md":
		return runImportMarkdown(cmdArgs, env)
	case "snapshot":
		return runSnapshot(cmdArgs, env)
	case "help", "-h", "--help":
		printUsage(env.Out)
		return 0
	default:
		fmt.Fprintf(env.Err, "Unknown command: %s\n", command)
		printUsage(env.Err)
		return 1
	}
}

// openBoard loads the saved board into an engine
func openBoard(env Env) (*interaction.Engine, error) {
	notes, err := storage.LoadNotes(context.Background(), env.Store, env.Now())
	if err != nil {
		return nil, err
	}
	return interaction.NewEngine(collection.New(notes, env.Now), interaction.Options{
		Now:    env.Now,
		Random: env.Random,
	}), nil
}

func saveBoard(env Env, engine *interaction.Engine) error {
	return storage.SaveNotes(context.Background(), env.Store, engine.Notes().All())
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `noter - a sticky note board for the terminal

Usage: noter [flags] [command] [arguments]

Commands:
  list, ls, l     List notes (top of the stack last)
                  noter list --json    # print the board as JSON
  add, a          Add a note
                  noter add -s "Subject" "Note text"
  delete, rm      Delete a note by id (a unique prefix of 4+ characters works)
  export          Write a dated backup file (noter_backup_DD_MM_YY.json)
  import <file>   Replace the board with a backup file
  markdown, md    Write each note as a markdown file with YAML frontmatter
  import-md <dir> Replace the board with the markdown notes in a directory
  snapshot <png>  Render the board to a PNG image

Flags:
      --data-dir <dir>     Where the board is stored
      --backup-dir <dir>   Where export writes backups
      --storage <kind>     Storage backend: file or sqlite

Running noter without a command launches the interactive board.`)
}
