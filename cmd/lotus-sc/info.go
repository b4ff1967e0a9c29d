package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/lotus-sim/lotus-script-go/host"
	"github.com/lotus-sim/lotus-script-go/vars"
)

// infoOutput is the JSON form of info. Variables are (name, type) pairs.
type infoOutput struct {
	Vars       [][2]string `json:"vars"`
	GlobalVars [][2]string `json:"global_vars"`
}

func infoCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	path := fs.String("path", "", "Path to the script wasm file")
	asJSON := fs.Bool("json", false, "Print JSON even on a terminal")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" && fs.NArg() > 0 {
		*path = fs.Arg(0)
	}
	if *path == "" {
		return fmt.Errorf("info: -path is required")
	}

	wasm, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	public, global, err := host.Info(ctx, wasm)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", *path, err)
	}

	if *asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		return writeInfoJSON(os.Stdout, public, global)
	}
	fmt.Println(titleStyle.Render("lotus-sc info") + " " + *path)
	fmt.Println()
	fmt.Println(renderDecls("Public variables", public))
	fmt.Println(renderDecls("Global variables", global))
	return nil
}

func writeInfoJSON(w io.Writer, public, global []vars.Decl) error {
	out := infoOutput{Vars: vars.Pairs(public), GlobalVars: vars.Pairs(global)}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderDecls(title string, decls []vars.Decl) string {
	if len(decls) == 0 {
		return funcStyle.Render(title) + "\n" + helpStyle.Render("  none") + "\n"
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(helpStyle).
		Headers("NAME", "TYPE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			if col == 1 {
				return typeStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, d := range decls {
		t.Row(d.Name, d.Type)
	}
	return funcStyle.Render(title) + "\n" + t.Render() + "\n"
}
