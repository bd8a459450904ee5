package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPreset = `CONFIG_TARGET_PLATFORM=esp32
CONFIG_BOARD_PLATFORM=devkit
CONFIG_BUILD_TYPE=Release
CONFIG_DESCRIPTION="ESP32 devkit build"
`

// useRoot points the command environment at a scratch SDK root.
func useRoot(t *testing.T) string {
	t.Helper()
	old := rootDir
	rootDir = t.TempDir()
	t.Cleanup(func() { rootDir = old })
	return rootDir
}

// captureStdout runs fn with stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunConfig(t *testing.T) {
	// seed lays out an SDK root with a native active configuration and
	// one esp32 preset targeting the devkit board.
	seed := func(t *testing.T) string {
		t.Helper()
		root := useRoot(t)
		writeFile(t, filepath.Join(root, "sdkconfig"), "CONFIG_TARGET_PLATFORM=native\nCONFIG_BOARD_PLATFORM=mac\n")
		writeFile(t, filepath.Join(root, "build", "configs", "esp32.config"), testPreset)
		return root
	}

	t.Run("applying a preset hints at a rebuild when artifacts are missing", func(t *testing.T) {
		root := seed(t)
		configCmd.SetIn(strings.NewReader("1\n"))
		t.Cleanup(func() { configCmd.SetIn(nil) })

		var err error
		out := captureStdout(t, func() { err = runConfig(configCmd, nil) })

		if err != nil {
			t.Fatalf("runConfig() error = %v", err)
		}
		if !strings.Contains(out, "switched to configuration esp32") {
			t.Fatalf("expected the switch notice, got:\n%s", out)
		}
		if !strings.Contains(out, "rebuild to apply it") {
			t.Errorf("expected the rebuild hint, got:\n%s", out)
		}

		active, err := os.ReadFile(filepath.Join(root, "sdkconfig"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(active), "CONFIG_BOARD_PLATFORM=devkit") {
			t.Errorf("expected the preset copied over sdkconfig, got:\n%s", active)
		}
	})

	t.Run("no rebuild hint when the new board is already built", func(t *testing.T) {
		root := seed(t)
		writeFile(t, filepath.Join(root, "out", "linx", "lib", "liblinx_sdk_static.a"), "x\n")
		writeFile(t, filepath.Join(root, "out", "linx", "lib", "liblinx_board_devkit.a"), "x\n")
		configCmd.SetIn(strings.NewReader("1\n"))
		t.Cleanup(func() { configCmd.SetIn(nil) })

		var err error
		out := captureStdout(t, func() { err = runConfig(configCmd, nil) })

		if err != nil {
			t.Fatalf("runConfig() error = %v", err)
		}
		if !strings.Contains(out, "switched to configuration esp32") {
			t.Fatalf("expected the switch notice, got:\n%s", out)
		}
		if strings.Contains(out, "rebuild to apply it") {
			t.Errorf("devkit artifacts exist, expected no rebuild hint, got:\n%s", out)
		}
	})

	t.Run("enter keeps the current configuration", func(t *testing.T) {
		root := seed(t)
		before, err := os.ReadFile(filepath.Join(root, "sdkconfig"))
		if err != nil {
			t.Fatal(err)
		}
		configCmd.SetIn(strings.NewReader("\n"))
		t.Cleanup(func() { configCmd.SetIn(nil) })

		var runErr error
		out := captureStdout(t, func() { runErr = runConfig(configCmd, nil) })

		if runErr != nil {
			t.Fatalf("runConfig() error = %v", runErr)
		}
		if !strings.Contains(out, "keeping") {
			t.Errorf("expected the keep notice, got:\n%s", out)
		}

		after, err := os.ReadFile(filepath.Join(root, "sdkconfig"))
		if err != nil {
			t.Fatal(err)
		}
		if string(after) != string(before) {
			t.Errorf("expected sdkconfig untouched, got:\n%s", after)
		}
	})
}

func TestRunInit(t *testing.T) {
	t.Run("scaffolds missing files", func(t *testing.T) {
		root := useRoot(t)

		var err error
		out := captureStdout(t, func() { err = runInit(initCmd, nil) })

		if err != nil {
			t.Fatalf("runInit() error = %v", err)
		}
		for _, rel := range []string{
			"sdkconfig",
			filepath.Join("build", "configs", "native-mac.config"),
			filepath.Join("build", "requirements.toml"),
		} {
			if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
				t.Errorf("expected %s to be created: %v", rel, err)
			}
		}
		if !strings.Contains(out, "created") {
			t.Errorf("expected creation notices, got:\n%s", out)
		}
	})

	t.Run("never overwrites existing files", func(t *testing.T) {
		root := useRoot(t)
		custom := "CONFIG_TARGET_PLATFORM=esp32\nCONFIG_BOARD_PLATFORM=devkit\n"
		writeFile(t, filepath.Join(root, "sdkconfig"), custom)

		var err error
		out := captureStdout(t, func() { err = runInit(initCmd, nil) })

		if err != nil {
			t.Fatalf("runInit() error = %v", err)
		}
		if !strings.Contains(out, "already exists, skipping") {
			t.Errorf("expected the skip notice, got:\n%s", out)
		}

		got, err := os.ReadFile(filepath.Join(root, "sdkconfig"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != custom {
			t.Errorf("expected sdkconfig untouched, got:\n%s", got)
		}
	})

	t.Run("second run reports nothing to do", func(t *testing.T) {
		useRoot(t)
		captureStdout(t, func() { _ = runInit(initCmd, nil) })

		var err error
		out := captureStdout(t, func() { err = runInit(initCmd, nil) })

		if err != nil {
			t.Fatalf("runInit() error = %v", err)
		}
		if !strings.Contains(out, "nothing to do, all files present") {
			t.Errorf("expected the idempotent notice, got:\n%s", out)
		}
	})

	t.Run("keeps an existing preset catalog", func(t *testing.T) {
		root := useRoot(t)
		writeFile(t, filepath.Join(root, "build", "configs", "esp32.config"), testPreset)

		var err error
		captureStdout(t, func() { err = runInit(initCmd, nil) })

		if err != nil {
			t.Fatalf("runInit() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, "build", "configs", "native-mac.config")); !os.IsNotExist(err) {
			t.Errorf("expected no sample preset next to an existing catalog, got err = %v", err)
		}
	})
}
