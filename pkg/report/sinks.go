/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	nameWidth = 72

	sheetName = "Results"

	failedFill  = "FF5900"
	erroredFill = "FFEB9C"
)

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}

	runes := []rune(s)

	return string(runes[:width-3]) + "..."
}

// Text writes a console table and a totals line.
func Text(w io.Writer) Sink {
	return SinkFunc(func(summary *Summary) error {
		var b strings.Builder

		fmt.Fprintf(&b, "\n  %-*s %-8s %s\n", nameWidth, "CASE", "OUTCOME", "DURATION")
		fmt.Fprintf(&b, "  %s %s %s\n", strings.Repeat("-", nameWidth), strings.Repeat("-", 8), strings.Repeat("-", 10))

		for _, c := range summary.Cases {
			name := truncate(c.Name, nameWidth)

			fmt.Fprintf(&b, "  %-*s %-8s %s\n", nameWidth, name, strings.ToUpper(string(c.Outcome)), c.Duration.Round(time.Millisecond))

			if c.Failure != nil {
				for _, line := range strings.Split(strings.TrimSpace(c.Failure.Message), "\n") {
					fmt.Fprintf(&b, "    -> %s\n", line)
				}

				if c.Failure.Location != "" {
					fmt.Fprintf(&b, "       at %s\n", c.Failure.Location)
				}
			}
		}

		fmt.Fprintf(&b, "\n  Total: %d | Passed: %d | Failed: %d | Errored: %d | Skipped: %d | Duration: %s\n",
			summary.Total, summary.Passed, summary.Failed, summary.Errored, summary.Skipped, summary.Duration.Round(time.Millisecond))

		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("writing text report: %w", err)
		}

		return nil
	})
}

// JSON writes the summary as indented JSON.
func JSON(w io.Writer) Sink {
	return SinkFunc(func(summary *Summary) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(summary); err != nil {
			return fmt.Errorf("writing json report: %w", err)
		}

		return nil
	})
}

// JSONFile writes the summary as JSON to path, creating parent directories.
func JSONFile(path string) Sink {
	return SinkFunc(func(summary *Summary) error {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating json report: %w", err)
		}

		if err := JSON(f).Write(summary); err != nil {
			_ = f.Close()
			return err
		}

		return f.Close()
	})
}

var xlsxHeaders = []string{"#", "Case", "Outcome", "Duration (ms)", "Failure", "Location"}

// XLSXFile writes one row per case, plus totals, to a spreadsheet at path.
func XLSXFile(path string) Sink {
	return SinkFunc(func(summary *Summary) error {
		f := excelize.NewFile()
		defer f.Close()

		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}

		failedStyle, err := fillStyle(f, failedFill)
		if err != nil {
			return err
		}

		erroredStyle, err := fillStyle(f, erroredFill)
		if err != nil {
			return err
		}

		for i, header := range xlsxHeaders {
			if err := setCell(f, i+1, 1, header); err != nil {
				return err
			}
		}

		for i, c := range summary.Cases {
			row := i + 2

			message, location := "", ""
			if c.Failure != nil {
				message, location = c.Failure.Message, c.Failure.Location
			}

			values := []interface{}{i + 1, c.Name, string(c.Outcome), c.Duration.Milliseconds(), message, location}

			for col, value := range values {
				if err := setCell(f, col+1, row, value); err != nil {
					return err
				}
			}

			style := -1

			//nolint:exhaustive
			switch c.Outcome {
			case OutcomeFailed:
				style = failedStyle
			case OutcomeErrored:
				style = erroredStyle
			}

			if style >= 0 {
				first, _ := excelize.CoordinatesToCellName(1, row)
				last, _ := excelize.CoordinatesToCellName(len(xlsxHeaders), row)

				if err := f.SetCellStyle(sheetName, first, last, style); err != nil {
					return fmt.Errorf("styling row %d: %w", row, err)
				}
			}
		}

		totalsRow := len(summary.Cases) + 3

		totals := []interface{}{
			"Total", summary.Total,
			"Passed", summary.Passed,
			"Failed", summary.Failed,
			"Errored", summary.Errored,
			"Skipped", summary.Skipped,
		}

		for i := 0; i < len(totals); i += 2 {
			row := totalsRow + i/2

			if err := setCell(f, 1, row, totals[i]); err != nil {
				return err
			}

			if err := setCell(f, 2, row, totals[i+1]); err != nil {
				return err
			}
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}

		if err := f.SaveAs(path); err != nil {
			return fmt.Errorf("saving xlsx report: %w", err)
		}

		return nil
	})
}

func fillStyle(f *excelize.File, color string) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{color},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("creating style: %w", err)
	}

	return style, nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("addressing cell: %w", err)
	}

	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("writing cell %s: %w", cell, err)
	}

	return nil
}
