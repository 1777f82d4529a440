// 离线导出脚本：读取保存下来的 evaluations 接口 JSON，生成 CSV/XLSX 并打印总分
//
// 不访问 Smartschool，也不需要数据库和 Redis，只读取配置文件中的日志设置。
//
// 用法: go run scripts/export_snapshot.go -in evaluations.json -out results.xlsx -order period-course

package main

import (
	"better_results_backend/internal/config"
	"better_results_backend/internal/grading"
	"better_results_backend/internal/model"
	"better_results_backend/internal/util"
	"better_results_backend/pkg/logger"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// snapshotConfig 只取脚本需要的配置项
type snapshotConfig struct {
	Server struct {
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Log struct {
		Path       string `yaml:"path"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
}

func loadLogConfig(path string) *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "release"},
		Log:    config.LogConfig{Path: "logs/export_snapshot.log", MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 7},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("无法读取配置文件 %s，使用默认日志设置: %v", path, err)
		return cfg
	}

	var sc snapshotConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	if sc.Server.Mode != "" {
		cfg.Server.Mode = sc.Server.Mode
	}
	if sc.Log.Path != "" {
		cfg.Log.Path = sc.Log.Path
	}
	if sc.Log.MaxSizeMB > 0 {
		cfg.Log.MaxSizeMB = sc.Log.MaxSizeMB
		cfg.Log.MaxBackups = sc.Log.MaxBackups
		cfg.Log.MaxAgeDays = sc.Log.MaxAgeDays
	}
	return cfg
}

func main() {
	configFile := flag.String("config", "configs/config.yaml", "配置文件")
	in := flag.String("in", "", "evaluations 接口返回的 JSON 文件")
	out := flag.String("out", "-", "输出文件，扩展名为 .xlsx 时导出 Excel，- 表示标准输出 CSV")
	orderFlag := flag.String("order", "chronological", "chronological | period-course | course-chronological")
	periodsFlag := flag.String("periods", "", "学期名，逗号分隔，默认全部")
	filterFlag := flag.String("filter", "", "before | after")
	dateFlag := flag.String("date", "", "过滤日期 YYYY-MM-DD")
	yearFlag := flag.String("year", "", "学年开始年份或 current，默认不限")
	flag.Parse()

	logger.InitLogger(loadLogConfig(*configFile))
	defer logger.Log.Sync()

	if *in == "" {
		log.Fatal("缺少 -in 参数")
	}
	order, err := grading.ParseExportOrder(*orderFlag)
	if err != nil {
		log.Fatal(err)
	}
	mode, date, err := grading.ParseFilter(*filterFlag, *dateFlag)
	if err != nil {
		log.Fatal(err)
	}
	year, err := grading.ParseSchoolYear(*yearFlag, time.Now())
	if err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("读取 %s 失败: %v", *in, err)
	}
	var records []model.EvaluationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("解析 %s 失败: %v", *in, err)
	}

	records = grading.FilterSchoolYear(records, year)
	ix := grading.Ingest(grading.FilterRecords(records, mode, date))
	for _, w := range ix.Warnings {
		logger.Log.Warn("Evaluation record skipped", zap.String("reason", w))
	}

	periods := util.SplitList(*periodsFlag)
	if len(periods) == 0 {
		periods = ix.Periods()
	}
	rows := grading.ExportRows(ix, periods, order)

	if err := writeRows(*out, rows); err != nil {
		log.Fatalf("写入导出文件失败: %v", err)
	}
	logger.Log.Info("Snapshot exported", zap.String("out", *out), zap.Int("rows", len(rows)))

	printTotals(os.Stderr, grading.BuildGrid(ix, periods))
}

func writeRows(out string, rows []grading.ExportRow) error {
	if out == "-" {
		return grading.WriteCSV(os.Stdout, rows)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(out), "."+util.ExportXLSX) {
		return grading.WriteXLSX(f, rows)
	}
	return grading.WriteCSV(f, rows)
}

func printTotals(w io.Writer, view *grading.GridView) {
	if view.Empty() {
		fmt.Fprintln(w, "没有可汇总的成绩")
		return
	}
	fmt.Fprintf(w, "学期: %s\n", strings.Join(view.Periods, ", "))
	for _, row := range view.Rows {
		total := row.Formatted
		if total == "" {
			total = "-"
		}
		fmt.Fprintf(w, "  %-30s %8s\n", row.Course, total)
	}
	fmt.Fprintf(w, "  %-30s %8s\n", "Total", view.OverallFormatted)
}
