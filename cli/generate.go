package cli

import (
	"github.com/spf13/cobra"

	"github.com/ByLCY/dictsheet/generator"
	"github.com/ByLCY/dictsheet/logger"
	"github.com/ByLCY/dictsheet/vocab"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		scope     scopeFlags
		rs        renderSettings
		count     int
		copies    int
		outputDir string
		prefix    string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "生成默写纸 PDF",
		Example: `  dictsheet generate --unit M1 --unit M2 --count 20 --copies 3
  dictsheet generate --grade 三上 --type word,phrase --output-dir out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix := vocab.NewIndex()
			gen, err := a.newGenerator(cmd, ix, rs)
			if err != nil {
				return err
			}
			if _, err := gen.LoadCSV(scope.csvPath(a)); err != nil {
				return err
			}
			req, err := scope.request(ix)
			if err != nil {
				return err
			}

			job := generator.Job{
				Units:     req.Units,
				Types:     req.Types,
				Count:     a.cfg.Generate.CountLimit(),
				Copies:    a.cfg.Generate.Copies,
				OutputDir: a.cfg.Output.Dir,
				Prefix:    prefix,
			}
			if cmd.Flags().Changed("count") {
				job.Count = nil
				if count >= 0 {
					job.Count = &count
				}
			}
			if cmd.Flags().Changed("copies") {
				job.Copies = copies
			}
			if outputDir != "" {
				job.OutputDir = outputDir
			}

			log := logger.FromContext(cmd.Context())
			report, err := gen.Run(job)
			if err != nil {
				return abortError(log, report, err)
			}
			log.Debug("生成结束",
				"files", len(report.Files), "skipped", len(report.Skipped), "failed", len(report.Failed))
			return reportError(report)
		},
	}
	scope.register(cmd.Flags())
	rs.register(cmd.Flags())
	cmd.Flags().IntVar(&count, "count", -1, "每份抽取数量，负数表示全部")
	cmd.Flags().IntVar(&copies, "copies", 1, "生成份数")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "输出目录（默认取配置 output.dir）")
	cmd.Flags().StringVar(&prefix, "prefix", "", "文件名前缀（默认取配置 output.prefix）")
	return cmd
}
