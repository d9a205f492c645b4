package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppLogger_SetLevel(t *testing.T) {
	logger := &AppLogger{
		level: LevelInfo,
	}

	logger.SetLevel(LevelDebug)
	if logger.level != LevelDebug {
		t.Errorf("SetLevel did not update level, got %v, want %v", logger.level, LevelDebug)
	}
}

func TestAppLogger_LogFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(LevelWarn, &buf)

	// Debug and Info should be filtered
	logger.Debug("debug message")
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("Debug/Info messages should be filtered when level is Warn")
	}

	// Warn and Error should pass
	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "WARN") {
		t.Error("Warn message should be logged")
	}

	buf.Reset()
	logger.Error("error message")
	if !strings.Contains(buf.String(), "ERROR") {
		t.Error("Error message should be logged")
	}
}

func TestAppLogger_LogFormatting(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(LevelDebug, &buf)

	logger.Info("Test message with %s", "formatting")

	output := buf.String()

	// Check timestamp format (YYYY/MM/DD)
	if !strings.Contains(output, time.Now().Format("2006/01/02")) {
		t.Error("Log should contain date in YYYY/MM/DD format")
	}

	// Check level
	if !strings.Contains(output, "[INFO]") {
		t.Error("Log should contain level indicator")
	}

	// Check message
	if !strings.Contains(output, "Test message with formatting") {
		t.Error("Log should contain formatted message")
	}
}

func TestDefaultLogConfig(t *testing.T) {
	// Test default values
	if defaultMaxFileSize != 5*1024*1024 {
		t.Errorf("defaultMaxFileSize = %v, want 5MB", defaultMaxFileSize)
	}

	if defaultMaxBackups != 5 {
		t.Errorf("defaultMaxBackups = %v, want 5", defaultMaxBackups)
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.HasSuffix(dir, ConfigDirName) {
		t.Errorf("GetConfigDir() = %v, should end with %v", dir, ConfigDirName)
	}

	if !FileExists(dir) {
		t.Error("GetConfigDir() should create the directory")
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(path) {
		t.Error("FileExists() should return true for existing file")
	}

	if FileExists("/nonexistent/path/to/file") {
		t.Error("FileExists() should return false for non-existing file")
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]string{"wlan0": "b", "eth0": "a", "tun0": "c"})
	want := []string{"eth0", "tun0", "wlan0"}

	if len(got) != len(want) {
		t.Fatalf("SortedKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortedKeys()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if len(SortedKeys(map[string]int{})) != 0 {
		t.Error("SortedKeys() of empty map should be empty")
	}
}

func TestStringInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}

	if !StringInSlice("b", slice) {
		t.Error("StringInSlice should return true for existing element")
	}

	if StringInSlice("d", slice) {
		t.Error("StringInSlice should return false for non-existing element")
	}
}

func TestWrapError(t *testing.T) {
	originalErr := ErrConfigSave
	wrapped := WrapError(originalErr, "additional context")

	if wrapped == nil {
		t.Error("WrapError should return non-nil error")
	}

	if !strings.Contains(wrapped.Error(), "additional context") {
		t.Error("WrapError should include additional context")
	}

	if !strings.Contains(wrapped.Error(), originalErr.Error()) {
		t.Error("WrapError should include original error message")
	}

	// Test with nil error
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
}

func TestRotatingFile_RotatesOversizedFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, LogFileName)

	// Create a log file larger than threshold
	largeContent := strings.Repeat("x", 1024*1024) // 1MB
	if err := os.WriteFile(logPath, []byte(largeContent), 0600); err != nil {
		t.Fatal(err)
	}

	f, err := openRotatingFile(dir, 512*1024, 2)
	if err != nil {
		t.Fatalf("openRotatingFile() error = %v", err)
	}
	defer f.Close()

	info, err := os.Stat(logPath)
	if err != nil || info.Size() != 0 {
		t.Errorf("log file should start empty after rotation, got %v, %v", info, err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, LogFileName+".*.gz"))
	if len(matches) != 1 {
		t.Errorf("expected one compressed backup, got %v", matches)
	}
}

func TestRotatingFile_RotatesOnWrite(t *testing.T) {
	dir := t.TempDir()

	f, err := openRotatingFile(dir, 64, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	line := []byte(strings.Repeat("y", 40) + "\n")
	for i := 0; i < 6; i++ {
		if _, err := f.Write(line); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		// Backup names carry millisecond timestamps.
		time.Sleep(2 * time.Millisecond)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, LogFileName+".*"))
	if len(matches) != 2 {
		t.Errorf("backups = %v, want the newest 2", matches)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != len(line) {
		t.Errorf("current file holds %d bytes, want %d", len(data), len(line))
	}
}

func TestInitLogger_FileOutput(t *testing.T) {
	dir := t.TempDir()
	console := &bytes.Buffer{}
	logger := NewLogger(LevelInfo, console)
	defer logger.Close()

	if err := logger.EnableFileLogging(dir); err != nil {
		t.Fatalf("EnableFileLogging() error = %v", err)
	}

	logger.Warn("public IP fetch failed for %s", "https://api.ipify.org")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "public IP fetch failed for https://api.ipify.org") {
		t.Errorf("log file missing message, got %q", string(data))
	}
	if !strings.Contains(console.String(), "public IP fetch failed") {
		t.Errorf("console missing message, got %q", console.String())
	}
}

func TestEnableFileLogging_RejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0700); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "logs")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	logger := &AppLogger{level: LevelInfo}
	if err := logger.EnableFileLogging(link); err == nil {
		t.Error("EnableFileLogging() should refuse a symlinked directory")
	}
}
