package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tsawler/iges/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	unsetStyle  = cellStyle.Foreground(lipgloss.Color("8"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// maxParamWidth caps the ParamStr column of the entries table.
const maxParamWidth = 60

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func newGlobalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "global FILE",
		Short: "Print the Global section parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := a.decoder(args[0]).Global()
			if err != nil {
				return err
			}
			return printGlobal(cmd.OutOrStdout(), g)
		},
	}
}

func printGlobal(w io.Writer, g *model.GlobalSection) error {
	params := g.Parameters()
	t := newTable("#", "Name", "Type", "Value").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 3 && row < len(params) && !params[row].Value.Set:
				return unsetStyle
			default:
				return cellStyle
			}
		})

	for _, p := range params {
		value := p.Text()
		if !p.Value.Set {
			value = "(unset)"
		}
		t.Row(strconv.Itoa(p.Index), p.Name, p.Type.String(), value)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newEntriesCmd(a *app) *cobra.Command {
	var entityType int

	cmd := &cobra.Command{
		Use:   "entries FILE",
		Short: "Print the directory entries with their parameter data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, _, err := a.decoder(args[0]).Entries()
			if err != nil {
				return err
			}
			list := entries.Sorted()
			if cmd.Flags().Changed("type") {
				list = entries.ByType(entityType)
			}
			return printEntries(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().IntVarP(&entityType, "type", "t", 0, "only show entries of this entity type")
	return cmd
}

func printEntries(w io.Writer, entries []*model.DirectoryEntry) error {
	fonts := model.DefaultLineFonts()
	t := newTable("Key", "Type", "Name", "Form", "Line font", "Parameters")
	for _, e := range entries {
		t.Row(
			strconv.Itoa(e.Sequence),
			strconv.Itoa(e.EntityType()),
			e.EntityName(),
			strconv.Itoa(e.Form()),
			fonts.Name(e.LineFontPattern),
			truncate(e.ParamStr, maxParamWidth),
		)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d entries\n", len(entries))
	return err
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
