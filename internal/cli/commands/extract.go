package commands

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"rovlog/pkg/table"
)

// ExtractOptions holds command-line options for the extract command.
type ExtractOptions struct {
	Config   string
	Output   string
	Start    string
	End      string
	Resample string
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <session-dir> <table-key> <column>",
		Short: "Extract one column as a (timestamp, value) series",
		Long: `Extract a single column from a session table as aligned timestamp and
value sequences, the shape a plotting layer consumes.

The table key is the path shown by inspect, e.g. rov_data/depth.log.
Both time bounds are inclusive and either may be omitted. --resample
averages numeric values into fixed intervals to thin dense data.

Example:
  rovlog extract /data/dives/2024-01-15_10-30-00 rov_data/depth.log depth
  rovlog extract --start "2024-01-15 10:35:00" --end "2024-01-15 10:40:00" \
      /data/dives/2024-01-15_10-30-00 rov_data/motor.log motor_inputs_0
  rovlog extract --resample 1s -o csv /data/dives/2024-01-15_10-30-00 \
      sensor_data/pressure_sensor.log pressure_mbar`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), args[0], args[1], args[2], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (optional)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|csv)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "Inclusive lower time bound")
	cmd.Flags().StringVar(&opts.End, "end", "", "Inclusive upper time bound")
	cmd.Flags().StringVar(&opts.Resample, "resample", "", "Average numeric values into fixed intervals (e.g. 1s)")

	return cmd
}

func runExtract(ctx context.Context, sessionPath, key, column string, opts *ExtractOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	start, err := parseTimeFlag(opts.Start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := parseTimeFlag(opts.End)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	data := newSessionLoader(cfg).Load(sessionPath)
	t, ok := data.Tables[key]
	if !ok {
		return fmt.Errorf("no table %q in session (available: %s)", key, tableKeys(data.Tables))
	}

	if opts.Resample != "" {
		interval, err := time.ParseDuration(opts.Resample)
		if err != nil {
			return fmt.Errorf("invalid --resample: %w", err)
		}
		t = table.Resample(t, interval)
	}

	series, ok := t.Series(column, start, end)
	if !ok {
		return fmt.Errorf("no column %q in table %q (available: %s)", column, key, columnNames(t))
	}

	return writeSeries(key, series, opts.Output)
}

func writeSeries(key string, s table.Series, format string) error {
	switch format {
	case "text":
		for i, ts := range s.Timestamps {
			fmt.Printf("%s\t%s\n", ts.Format("2006-01-02 15:04:05.000000"), valueText(s.Values[i]))
		}
		return nil

	case "csv":
		w := csv.NewWriter(os.Stdout)
		if err := w.Write([]string{"timestamp", s.Name}); err != nil {
			return err
		}
		for i, ts := range s.Timestamps {
			if err := w.Write([]string{ts.Format("2006-01-02 15:04:05.000000"), valueText(s.Values[i])}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()

	case "json":
		payload := struct {
			Table      string      `json:"table"`
			Column     string      `json:"column"`
			Kind       string      `json:"kind"`
			Timestamps []time.Time `json:"timestamps"`
			Values     []any       `json:"values"`
		}{
			Table:      key,
			Column:     s.Name,
			Kind:       kindName(s.Kind),
			Timestamps: s.Timestamps,
			Values:     make([]any, len(s.Values)),
		}
		for i, v := range s.Values {
			switch v.Kind {
			case table.KindNumber:
				payload.Values[i] = v.Num
			case table.KindText:
				payload.Values[i] = v.Str
			default:
				payload.Values[i] = nil
			}
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)

	default:
		return fmt.Errorf("unknown output format %q (use text, json, or csv)", format)
	}
}

func valueText(v table.Value) string {
	switch v.Kind {
	case table.KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case table.KindText:
		return v.Str
	default:
		return ""
	}
}

func kindName(k table.ValueKind) string {
	if k == table.KindNumber {
		return "number"
	}
	return "text"
}

func tableKeys(tables map[string]*table.Table) string {
	keys := make([]string, 0, len(tables))
	for key := range tables {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return joinOrNone(keys)
}

func columnNames(t *table.Table) string {
	return joinOrNone(t.ColumnNames())
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	out := items[0]
	for _, item := range items[1:] {
		out += ", " + item
	}
	return out
}
