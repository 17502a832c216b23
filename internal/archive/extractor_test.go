package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func buildTestJar(t *testing.T, dir string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, "test.jar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractEntry(t *testing.T) {
	dir := t.TempDir()
	jar := buildTestJar(t, dir, map[string]string{"version.json": `{"id":"forge-1.20.4"}`})

	out := filepath.Join(dir, "out", "version.json")
	if err := ExtractEntry(jar, "version.json", out, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":"forge-1.20.4"}` {
		t.Errorf("unexpected content: %s", data)
	}
}

func TestExtractEntryMissing(t *testing.T) {
	dir := t.TempDir()
	jar := buildTestJar(t, dir, map[string]string{"other.txt": "x"})
	err := ExtractEntry(jar, "version.json", filepath.Join(dir, "out.json"), nil)
	if err == nil {
		t.Fatal("expected an error for a missing entry")
	}
}

func TestExtractNativeLibrariesFlattensNames(t *testing.T) {
	dir := t.TempDir()
	jar := buildTestJar(t, dir, map[string]string{
		"META-INF/MANIFEST.MF":            "manifest",
		"natives/windows/x86_64/lwjgl.dll": "dll-bytes",
		"natives/linux/liblwjgl.so":        "so-bytes",
	})
	outDir := filepath.Join(dir, "bin")
	if err := ExtractNativeLibraries(jar, outDir, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "lwjgl.dll")); err != nil {
		t.Errorf("expected flattened lwjgl.dll: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "liblwjgl.so")); err != nil {
		t.Errorf("expected flattened liblwjgl.so: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "MANIFEST.MF")); err == nil {
		t.Error("non-native entries should not be extracted")
	}
}

func TestExtractNativeLibrariesNoMatchIsNoop(t *testing.T) {
	dir := t.TempDir()
	jar := buildTestJar(t, dir, map[string]string{"readme.txt": "hi"})
	outDir := filepath.Join(dir, "bin")
	if err := ExtractNativeLibraries(jar, outDir, nil); err != nil {
		t.Fatalf("a library with no native entries should not error: %v", err)
	}
}

func TestNativesSuffixByPlatform(t *testing.T) {
	cases := []struct {
		goos, goarch, want string
	}{
		{"windows", "amd64", "natives-windows.jar"},
		{"windows", "arm64", "natives-windows-arm64.jar"},
		{"windows", "386", "natives-windows-x86.jar"},
		{"darwin", "amd64", "natives-macos.jar"},
		{"darwin", "arm64", "natives-macos-arm64.jar"},
		{"linux", "amd64", "natives-linux.jar"},
	}
	for _, c := range cases {
		if got := NativesSuffix(c.goos, c.goarch); got != c.want {
			t.Errorf("NativesSuffix(%s,%s) = %s, want %s", c.goos, c.goarch, got, c.want)
		}
	}
}
