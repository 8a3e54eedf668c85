package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"ac_efficiency_calc/batch"
	"ac_efficiency_calc/config"
	"ac_efficiency_calc/efficiency"
	"ac_efficiency_calc/server"
)

/*
1件の測定値から冷房能力と効率を計算して表示する

	Args:
	    out: 出力先
	    raw: 入力値 (文字列のまま)
	    manual: 手計算の手順も出力するか否か
*/
func runCalc(out io.Writer, raw efficiency.RawMeasurement, manual bool) error {
	res, err := efficiency.Compute(raw)
	if err != nil {
		return err
	}

	fmt.Fprint(out, efficiency.FormatResult(res))
	if manual {
		fmt.Fprintln(out)
		fmt.Fprint(out, efficiency.ManualCalculation(res))
	}
	return nil
}

/*
CSV ファイルの測定値を一括計算する

	Args:
	    logger
	    input_path: 測定値 CSV ファイルへのパス
	    output_data_dir: 出力フォルダへのパス
*/
func runBatch(logger *slog.Logger, input_path string, output_data_dir string) error {
	// 出力ディレクトリの作成
	if err := os.MkdirAll(output_data_dir, 0755); err != nil {
		return fmt.Errorf("`%s` is not a directory: %w", output_data_dir, err)
	}

	logger.Info("load measurements", "path", input_path)
	file, err := os.Open(input_path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := batch.Read(file, 0)
	if err != nil {
		return err
	}

	results := batch.Evaluate(rows)

	result_path := filepath.Join(output_data_dir, "result.csv")
	logger.Info("save calculation results", "path", result_path)
	dst, err := os.Create(result_path)
	if err != nil {
		return err
	}
	if err := batch.Write(dst, results); err != nil {
		dst.Close()
		return err
	}
	// 書き込みはここで確定する
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close `%s`: %w", result_path, err)
	}

	s := batch.Summarize(results)
	logger.Info("batch summary",
		"rows", s.Rows, "ok", s.OK, "failed", s.Failed,
		"mean_cop", s.MeanCOP, "min_cop", s.MinCOP, "max_cop", s.MaxCOP,
		"mean_eer", s.MeanEER, "mean_total_capacity_w", s.MeanTotalCapacityW,
		"mean_p_v_in_kpa", s.MeanVaporPressureInKPa, "mean_p_v_out_kpa", s.MeanVaporPressureOutKPa)
	return nil
}

// loadServe reads the API configuration, .env included, and builds the
// logger from its LOG_LEVEL.
func loadServe() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, newLogger(cfg.LogLevel), nil
}

// runServe starts the HTTP API and blocks until SIGINT or SIGTERM.
func runServe() error {
	cfg, logger, err := loadServe()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger, os.Stdout).Run(ctx)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func main() {
	var mode string
	flag.StringVar(&mode, "mode", "calc", "実行モードを指定します。 (calc, batch, serve)")

	var raw efficiency.RawMeasurement
	flag.StringVar(&raw.Airflow, "airflow", "", "風量")
	flag.StringVar(&raw.AirflowUnit, "airflow_unit", "m3/h", "風量の単位 (m3/h, CFM)")
	flag.StringVar(&raw.TempIn, "temp_in", "25", "吸込空気温度, degree C")
	flag.StringVar(&raw.TempOut, "temp_out", "20", "吹出空気温度, degree C")
	flag.StringVar(&raw.RHIn, "rh_in", "", "吸込空気の相対湿度, %")
	flag.StringVar(&raw.RHOut, "rh_out", "", "吹出空気の相対湿度, %")
	flag.StringVar(&raw.Power, "power", "", "消費電力")
	flag.StringVar(&raw.PowerUnit, "power_unit", "W", "消費電力の単位 (W, BTU/h)")

	var manual bool
	flag.BoolVar(&manual, "manual", false, "手計算の手順を出力するか否かを指定します。")

	var input_path string
	flag.StringVar(&input_path, "input", "", "一括計算する測定値の CSV ファイル")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", ".", "出力フォルダ")

	var log_level string
	flag.StringVar(&log_level, "log", "INFO", "ログレベルを指定します。 (serve モードでは LOG_LEVEL を使用)")

	// 引数を受け取る
	flag.Parse()

	logger := newLogger(log_level)
	start := time.Now()

	var err error
	switch mode {
	case "calc":
		err = runCalc(os.Stdout, raw, manual)
	case "batch":
		if input_path == "" {
			err = fmt.Errorf("-input is required in batch mode")
			break
		}
		err = runBatch(logger, input_path, output_data_dir)
	case "serve":
		err = runServe()
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	logger.Debug("done", "elapsed_time", time.Since(start))
}
