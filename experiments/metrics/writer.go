package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type GameRecord struct {
	ID        int
	Winner    string // "White" or "Black"
	AIWon     bool
	Plies     int
	Moves     []string // notation, in play order
	Benchmark int      // agent benchmark after the game was recorded
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for one run under root/name.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Winner,
			strconv.FormatBool(record.AIWon),
			strconv.Itoa(record.Plies),
			strings.Join(record.Moves, " "),
			strconv.Itoa(record.Benchmark),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}
	header := []string{"game", "winner", "ai_won", "plies", "moves", "benchmark", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteBenchmarkHistory(history []int) error {
	rows := make([][]string, 0, len(history))
	for i, score := range history {
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(score)})
	}
	return w.write("benchmark_history.csv", []string{"sample", "score"}, rows)
}

func (w *Writer) WriteBatchMetrics(batches []BatchMetric) error {
	rows := make([][]string, 0, len(batches))
	for _, m := range batches {
		rows = append(rows, []string{
			strconv.Itoa(m.Workers),
			strconv.Itoa(m.Games),
			strconv.Itoa(m.Wins),
			strconv.Itoa(m.Plies),
			m.Duration.String(),
			strconv.FormatFloat(m.GamesPerSecond(), 'f', 2, 64),
		})
	}
	header := []string{"workers", "games", "wins", "plies", "duration", "games_per_second"}
	return w.write("batch_metrics.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// AppendLog appends a game log to path, creating the file if needed.
func AppendLog(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("failed to write log %s: %w", path, err)
	}
	return nil
}
