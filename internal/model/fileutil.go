package model

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// LineContext is a line of a file together with its neighbours.
type LineContext struct {
	Before     []string // Lines preceding the target, oldest first
	Target     string   // The target line
	After      []string // Lines following the target
	LineNumber int      // 1-based number of the target
	ErrorMsg   string   // Set when the file or line could not be read
}

// GetLineContext reads filePath and returns lineNumber with up to radius
// lines on either side.
func GetLineContext(filePath string, lineNumber, radius int) LineContext {
	result := LineContext{LineNumber: lineNumber}

	file, err := os.Open(ExpandTilde(filePath))
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
		return result
	}

	if lineNumber < 1 || lineNumber > len(lines) {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, len(lines))
		return result
	}

	idx := lineNumber - 1
	result.Target = lines[idx]
	result.Before = lines[max(0, idx-radius):idx]
	result.After = lines[idx+1 : min(len(lines), idx+1+radius)]
	return result
}
