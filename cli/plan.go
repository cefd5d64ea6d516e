package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/dictsheet/dsl"
	"github.com/ByLCY/dictsheet/generator"
	"github.com/ByLCY/dictsheet/logger"
	"github.com/ByLCY/dictsheet/vocab"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		csv    string
		rs     renderSettings
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "按计划文件批量生成默写纸",
		Long: `计划文件示例：

  plan "三年级上册" {
    defaults { copies: 2; output: "out" }
    job week1 { units: [M1, M2]; count: 20 }
    job review { grade: 三上; types: "word,sentence"; label: "复习" }
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := a.readPlan(args[0])
			if err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())

			ix := vocab.NewIndex()
			gen, err := a.newGenerator(cmd, ix, rs)
			if err != nil {
				return err
			}
			path := csv
			if path == "" {
				path = a.cfg.Data.CSV
			}
			if _, err := gen.LoadCSV(path); err != nil {
				return err
			}

			failed := 0
			for _, spec := range jobs {
				job, err := planJob(ix, spec, a.cfg.Output.Dir)
				if err != nil {
					return fmt.Errorf("任务 %s: %w", spec.Name, err)
				}
				if dryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: 单元 %v，份数 %d，输出 %s\n", spec.Name, job.Units, job.Copies, job.OutputDir)
					continue
				}
				log.Info("开始任务", "job", spec.Name, "units", job.Units)
				report, err := gen.Run(job)
				if err != nil {
					return fmt.Errorf("任务 %s: %w", spec.Name, abortError(log, report, err))
				}
				failed += len(report.Failed)
			}
			if failed > 0 {
				return fmt.Errorf("共有 %d 份生成失败", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csv, "csv", "", "词汇 CSV 文件（默认取配置 data.csv）")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "只列出任务，不生成文件")
	rs.register(cmd.Flags())
	return cmd
}

func (a *app) readPlan(path string) ([]dsl.JobSpec, error) {
	f, err := a.deps.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开计划文件 %s 失败: %w", path, err)
	}
	defer f.Close()
	plan, err := dsl.Parse(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	return plan.Jobs()
}

// planJob 把计划中的任务转换为生成请求，grade 展开为该年级的单元并追加在 units 之后。
func planJob(ix *vocab.Index, spec dsl.JobSpec, defaultDir string) (generator.Job, error) {
	units := append([]string(nil), spec.Units...)
	if spec.Grade != "" {
		gradeUnits := ix.UnitsFor(spec.Grade)
		if len(gradeUnits) == 0 {
			return generator.Job{}, fmt.Errorf("年级 %s 下没有单元", spec.Grade)
		}
		units = append(units, gradeUnits...)
	}
	var types []vocab.Type
	for _, s := range spec.Types {
		t, err := vocab.ParseType(s)
		if err != nil {
			return generator.Job{}, err
		}
		types = append(types, t)
	}
	dir := spec.Output
	if dir == "" {
		dir = defaultDir
	}
	return generator.Job{
		Units:     units,
		Types:     types,
		Count:     spec.Count,
		Copies:    spec.Copies,
		OutputDir: dir,
		Prefix:    spec.Label,
	}, nil
}
