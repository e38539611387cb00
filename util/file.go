package util

import (
	"os"
	"strings"
)

// WriteToFile writes the given lines to a file, replacing its contents.
func WriteToFile(savePath string, lines ...string) error {
	return os.WriteFile(savePath, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// AppendToFile appends the given lines to a file, creating it if needed.
func AppendToFile(savePath string, lines ...string) error {
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, line := range lines {
		if _, err = f.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}
