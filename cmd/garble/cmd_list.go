package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"garble/pkg/pipeline"
)

// listCmd enumerates registered operation kinds
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered operation kinds and backend availability",
	RunE:  runList,
}

var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	listKindStyle   = lipgloss.NewStyle().Bold(true)
	listAccelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	listPlainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runList(cmd *cobra.Command, args []string) error {
	reg := pipeline.BuiltinRegistry()

	var b strings.Builder
	b.WriteString(listHeaderStyle.Render("Registered operations"))
	b.WriteString("\n\n")

	for _, kind := range reg.Kinds() {
		def, err := reg.Lookup(kind)
		if err != nil {
			return err
		}
		backends := listPlainStyle.Render("portable")
		if def.HasAccelerated() {
			backends = listAccelStyle.Render("accelerated") + ", " + listPlainStyle.Render("portable")
		}
		b.WriteString(fmt.Sprintf("  %s  v%s  [%s]\n",
			listKindStyle.Render(fmt.Sprintf("%-12s", kind)),
			def.Identity.Version,
			backends))
	}

	fmt.Fprint(cmd.OutOrStdout(), b.String())
	return nil
}
