package config

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// NewLogger creates the structured logger described by c. Output goes to the
// configured file, or to fallback when no file is set.
func NewLogger(c LogConfig, fallback io.Writer) (l.Logger, error) {
	output := fallback
	if output == nil {
		output = os.Stdout
	}
	var file *os.File
	if c.File != "" {
		var err error
		file, err = os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  c.JSON,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
