package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCLI_LifelistCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MyEBirdData.csv")
	content := "Common Name,Scientific Name\n" +
		"\"Sora\",Porzana carolina\n" +
		"\"Canada Goose (moffitti/maxima)\",Branta canadensis\n" +
		"\"Mallard x American Black Duck\",Anas platyrhynchos x rubripes\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := runCmd(t, "lifelist", "--file", path, "--show", "0"); err != nil {
		t.Fatalf("lifelist: %v", err)
	}
}

func TestCLI_LifelistRequiresFile(t *testing.T) {
	llFile = ""
	if err := runCmd(t, "lifelist"); err == nil {
		t.Fatalf("expected error without --file")
	}
}

func TestCLI_OptimizeRequiresDates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.csv")
	if err := os.WriteFile(path, []byte("Common Name\nSora\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	optStart, optEnd = "", ""
	if err := runCmd(t, "optimize", "--file", path); err == nil {
		t.Fatalf("expected error without --start/--end")
	}
}
