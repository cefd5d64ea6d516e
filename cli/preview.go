package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ByLCY/dictsheet/selection"
	"github.com/ByLCY/dictsheet/vocab"
)

func newPreviewCmd(a *app) *cobra.Command {
	var scope scopeFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "预览所选单元中各类别的词汇数量",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, err := a.loadIndex(scope.csvPath(a))
			if err != nil {
				return err
			}
			req, err := scope.request(ix)
			if err != nil {
				return err
			}
			counts := map[vocab.Type]int{}
			for _, r := range selection.Candidates(ix, req) {
				counts[r.Type]++
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderPreview(lipgloss.NewRenderer(out), a, req, counts))
			return nil
		},
	}
	scope.register(cmd.Flags())
	return cmd
}

func renderPreview(r *lipgloss.Renderer, a *app, req selection.Request, counts map[vocab.Type]int) string {
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1)
	key := r.NewStyle().Foreground(lipgloss.Color("244")).Width(10)
	value := r.NewStyle().Bold(true)
	box := r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)

	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, key.Render(k), value.Render(v))
	}

	var rows []string
	rows = append(rows, title.Render("默写纸预览"))
	rows = append(rows, row("单元", strings.Join(req.Units, ", ")))
	total := 0
	for _, t := range vocab.Types {
		if len(req.Types) > 0 && !slices.Contains(req.Types, t) {
			continue
		}
		rows = append(rows, row(t.Label(), strconv.Itoa(counts[t])))
		total += counts[t]
	}
	rows = append(rows, row("合计", strconv.Itoa(total)))

	count := "全部"
	if n := a.cfg.Generate.CountLimit(); n != nil {
		count = strconv.Itoa(*n)
	}
	rows = append(rows, row("每份数量", count))
	rows = append(rows, row("份数", strconv.Itoa(a.cfg.Generate.Copies)))
	rows = append(rows, row("纸张", a.cfg.Page.Size+" / "+a.cfg.Page.Margin))
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
