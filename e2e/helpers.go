package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildPymapBinary builds the pymap CLI into a temporary binary and
// returns its path.
func buildPymapBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "pymap")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pymap")

	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build pymap binary: %v\n%s", err, output)
	}

	return binaryPath
}

// createTestPythonFile writes a Python source file under dir, creating
// parent directories as needed.
func createTestPythonFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", dir, err)
	}

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test file %s: %v", filename, err)
	}
	return filePath
}

// createTestConfigFile creates a temporary .pymap.toml config file in testDir.
func createTestConfigFile(t *testing.T, testDir string, roots []string, shallowStd bool) {
	t.Helper()

	configFile := filepath.Join(testDir, ".pymap.toml")
	rootsLine := ""
	for i, r := range roots {
		if i > 0 {
			rootsLine += ", "
		}
		rootsLine += fmt.Sprintf("%q", r)
	}
	content := fmt.Sprintf("[search]\nroots = [%s]\n\n[parser]\nshallow_std = %v\n", rootsLine, shallowStd)
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create config file: %v", err)
	}
}
