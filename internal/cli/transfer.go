package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/gymsimple/internal/transfer"
)

type ExportCmd struct {
	Kind   string `arg:"" enum:"exercises,sessions" help:"What to export: exercises or sessions."`
	Dir    string `help:"Directory to write the export file into." type:"path" default:"."`
	Stdout bool   `help:"Write the JSON to stdout instead of a file."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	var sharer transfer.Sharer = transfer.DirSharer{Dir: c.Dir}
	if c.Stdout {
		sharer = transfer.WriterSharer{W: os.Stdout}
	}

	svc := ctx.Transfer()
	var (
		dest string
		err  error
	)
	switch c.Kind {
	case "exercises":
		dest, err = svc.ExportExercises(sharer)
	case "sessions":
		dest, err = svc.ExportSessions(sharer)
	}
	if errors.Is(err, transfer.ErrNothingToExport) {
		fmt.Fprintf(os.Stderr, "No %s to export\n", c.Kind)
		return nil
	}
	if err != nil {
		return err
	}

	if !c.Stdout {
		fmt.Printf("Exported %s to %s\n", c.Kind, dest)
	}
	return nil
}

type ImportCmd struct {
	Kind string `arg:"" enum:"exercises,sessions" help:"What to import: exercises or sessions."`
	File string `arg:"" help:"JSON file to import, or - for stdin."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	picker := transfer.FilePicker{Path: c.File, Stdin: ctx.Stdin}

	svc := ctx.Transfer()
	var (
		result transfer.ImportResult
		err    error
	)
	switch c.Kind {
	case "exercises":
		result, err = svc.ImportExercises(picker)
	case "sessions":
		result, err = svc.ImportSessions(picker)
	}

	var importErr *transfer.ImportError
	if errors.As(err, &importErr) {
		for _, p := range importErr.Problems() {
			fmt.Fprintf(os.Stderr, "  - %v\n", p)
		}
		return err
	}
	if errors.Is(err, transfer.ErrCanceled) {
		fmt.Println("Import cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d %s (%d total)\n", result.Imported, c.Kind, result.Total)
	return nil
}
