package tablewriterservice

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hopcli/hop/internal/extensions"
	"github.com/hopcli/hop/internal/models"
	sshcommands "github.com/hopcli/hop/internal/thirdPartyCommands/sshCommands"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	ServerTableHeaders = []string{"Name", "User", "IP"}
	DetailTableHeaders = []string{"Name", "User", "IP", "SSH Command"}
	ProbeTableHeaders  = []string{"Server", "Target", "Result"}
)

func newTable(out io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(out,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNormal},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
	)
}

func DisplayServersTable(out io.Writer, servers []models.Server) error {
	fmt.Fprintf(out, "%s\n\n", color.New(color.Bold).Sprint("Configured servers:"))

	table := newTable(out)
	table.Header(ServerTableHeaders)
	for _, server := range servers {
		if err := table.Append([]string{server.Name, server.User, server.Ip}); err != nil {
			return fmt.Errorf("error adding %s to table, %w", server.Name, err)
		}
	}

	return table.Render()
}

func DisplayServerDetails(out io.Writer, servers []models.Server) error {
	fmt.Fprintf(out, "%s\n\n", color.New(color.Bold).Sprint("Configured servers:"))

	table := newTable(out)
	table.Header(DetailTableHeaders)
	for _, server := range servers {
		if err := table.Append([]string{
			color.GreenString(server.Name),
			server.User,
			server.Ip,
			color.YellowString(server.SshCommand()),
		}); err != nil {
			return fmt.Errorf("error adding %s to table, %w", server.Name, err)
		}
	}

	return table.Render()
}

func DisplayProbeResults(out io.Writer, results []sshcommands.ProbeResult) error {
	table := newTable(out)
	table.Header(ProbeTableHeaders)
	for _, result := range results {
		status := color.GreenString("ok")
		if result.Err != nil {
			status = color.RedString(extensions.TruncateString(result.Err.Error(), 80))
		}

		if err := table.Append([]string{result.Server.Name, result.Server.Target(), status}); err != nil {
			return fmt.Errorf("error adding %s to table, %w", result.Server.Name, err)
		}
	}

	return table.Render()
}
