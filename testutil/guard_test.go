package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInternalImportForbidden(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"rentledger/internal/kv", true},
		{"example.com/mod/internal", true},
		{"rentledger/pkg/domain", false},
		{"github.com/shopspring/decimal", false},
	}
	for _, c := range cases {
		if got := InternalImportForbidden(c.in); got != c.want {
			t.Fatalf("InternalImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestThirdPartyExcept(t *testing.T) {
	pred := ThirdPartyExcept("github.com/shopspring/decimal")
	cases := []struct {
		in   string
		want bool
	}{
		{"time", false},
		{"encoding/json", false},
		{"github.com/shopspring/decimal", false},
		{"github.com/shopspring/decimalx", true},
		{"github.com/google/uuid", true},
	}
	for _, c := range cases {
		if got := pred(c.in); got != c.want {
			t.Fatalf("ThirdPartyExcept(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func writeFile(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestImportViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package tmp\nimport (\n\t\"fmt\"\n\t\"rentledger/internal/kv\"\n)\nvar _ = fmt.Sprint\nvar _ kv.Store\n")
	writeFile(t, dir, "a_test.go", "package tmp\nimport \"rentledger/internal/app\"\nvar _ app.App\n")
	writeFile(t, dir, "notes.txt", "import \"rentledger/internal/cli\"")

	viols, err := ImportViolations(dir, InternalImportForbidden)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || !strings.HasPrefix(viols[0], "rentledger/internal/kv (in a.go)") {
		t.Fatalf("unexpected violations %v", viols)
	}
}

func TestImportViolationsParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.go", "package\n")
	if _, err := ImportViolations(dir, InternalImportForbidden); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := ImportViolations(filepath.Join(dir, "missing"), InternalImportForbidden); err == nil {
		t.Fatalf("expected read error")
	}
}

type recordingFatal struct{ msg string }

func (r *recordingFatal) Fatalf(format string, _ ...any) { r.msg = format }

func TestFailIfViolations(t *testing.T) {
	r := &recordingFatal{}
	failIfViolations(r, "reason", nil)
	if r.msg != "" {
		t.Fatalf("no violations should not fail")
	}
	failIfViolations(r, "reason", []string{"x"})
	if r.msg == "" {
		t.Fatalf("violations should fail")
	}
}

func TestAssertNoDirectImportsClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.go", "package tmp\nimport \"fmt\"\nfunc X(){fmt.Println(1)}")
	AssertNoDirectImports(t, dir, AnyOf(InternalImportForbidden, ThirdPartyExcept()), "none")
}
