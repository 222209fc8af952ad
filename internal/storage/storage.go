package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CursorData represents the structure of the cursor data stored in the file
type CursorData struct {
	Cursor    string `json:"cursor"`
	UpdatedAt int64  `json:"updated_at"`
}

// ResolveDir expands a leading ~ and creates the directory if needed
func ResolveDir(dir string) (string, error) {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(homeDir, strings.TrimPrefix(dir, "~"))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cursor directory: %w", err)
	}

	return dir, nil
}

// GetCursorFilePath returns the path to the cursor file for a listing stream
func GetCursorFilePath(dir, stream string) (string, error) {
	if stream == "" {
		return "", fmt.Errorf("stream name cannot be empty")
	}

	resolved, err := ResolveDir(dir)
	if err != nil {
		return "", err
	}

	return filepath.Join(resolved, fmt.Sprintf("%s_cursor.json", sanitize(stream))), nil
}

// sanitize keeps stream names usable as file names
func sanitize(stream string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, stream)
}

// SaveCursor saves the paging cursor of a stream to a file
func SaveCursor(dir, stream, cursor string) error {
	filePath, err := GetCursorFilePath(dir, stream)
	if err != nil {
		return err
	}

	data := CursorData{
		Cursor:    cursor,
		UpdatedAt: time.Now().Unix(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal cursor data: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write cursor file: %w", err)
	}

	return nil
}

// LastCursor gets the saved cursor of a stream, or "" if none was saved
func LastCursor(dir, stream string) (string, error) {
	filePath, err := GetCursorFilePath(dir, stream)
	if err != nil {
		return "", err
	}

	if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
		return "", nil
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read cursor file: %w", err)
	}

	var data CursorData
	if err := json.Unmarshal(fileData, &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal cursor data: %w", err)
	}

	return data.Cursor, nil
}

// ClearCursor removes the saved cursor of a stream
func ClearCursor(dir, stream string) error {
	filePath, err := GetCursorFilePath(dir, stream)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cursor file: %w", err)
	}
	return nil
}
