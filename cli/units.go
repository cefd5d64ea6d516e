package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newUnitsCmd(a *app) *cobra.Command {
	var csv, grade string
	cmd := &cobra.Command{
		Use:   "units",
		Short: "列出词汇表中的年级与单元",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := csv
			if path == "" {
				path = a.cfg.Data.CSV
			}
			ix, err := a.loadIndex(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if grade != "" {
				units := ix.UnitsFor(grade)
				if len(units) == 0 {
					return fmt.Errorf("年级 %s 下没有单元", grade)
				}
				fmt.Fprintln(out, strings.Join(units, "\n"))
				return nil
			}
			byGrade := ix.GradeUnits()
			for _, g := range ix.Grades() {
				fmt.Fprintf(out, "%s: %s\n", g, strings.Join(byGrade[g], ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csv, "csv", "", "词汇 CSV 文件（默认取配置 data.csv）")
	cmd.Flags().StringVar(&grade, "grade", "", "只列出该年级的单元")
	return cmd
}
