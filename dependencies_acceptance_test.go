package modify_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestModuleDependencies_JWTPresent(t *testing.T) {
	testModulePresence(t, "github.com/golang-jwt/jwt/v5")
}

func TestModuleDependencies_XCryptoPresent(t *testing.T) {
	testModulePresence(t, "golang.org/x/crypto")
}

func TestModuleDependencies_GoosePresent(t *testing.T) {
	testModulePresence(t, "github.com/pressly/goose/v3")
}

func TestModuleDependencies_PrometheusPresent(t *testing.T) {
	testModulePresence(t, "github.com/prometheus/client_golang")
}

func TestModuleDependencies_CobraPresent(t *testing.T) {
	testModulePresence(t, "github.com/spf13/cobra")
}

func TestJWTImport_OnlyInTokenPackage(t *testing.T) {
	t.Run("happy_repo_signs_tokens_in_one_place", func(t *testing.T) {
		matches, err := findJWTImportsOutside(".", filepath.Join("internal", "token"))
		if err != nil {
			t.Fatalf("scan repository: %v", err)
		}
		if len(matches) != 0 {
			t.Fatalf("expected jwt imports only under internal/token, found in: %v", matches)
		}
	})

	t.Run("error_fixture_with_jwt_import_is_detected", func(t *testing.T) {
		fixture := `package auth

import "github.com/golang-jwt/jwt/v5"`
		if !importsJWT(fixture) {
			t.Fatal("expected jwt import to be detected in fixture")
		}
	})
}

func testModulePresence(t *testing.T, module string) {
	t.Helper()

	t.Run("happy_present_in_real_go_mod", func(t *testing.T) {
		goMod, err := os.ReadFile("go.mod")
		if err != nil {
			t.Fatalf("read go.mod: %v", err)
		}
		if !moduleRequired(string(goMod), module) {
			t.Fatalf("expected module %q to be present in go.mod", module)
		}
	})

	t.Run("error_missing_module_in_fixture", func(t *testing.T) {
		fixture := `module example.com/demo

go 1.25.0

require (
	github.com/gin-gonic/gin v1.11.0
)`
		if moduleRequired(fixture, module) {
			t.Fatalf("expected fixture to not contain module %q", module)
		}
	})
}

func moduleRequired(goModContent, module string) bool {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(module) + `\s+v\S+`)
	return re.MatchString(goModContent)
}

// findJWTImportsOutside lists non-test Go files importing golang-jwt that do
// not live under allowedDir.
func findJWTImportsOutside(root, allowedDir string) ([]string, error) {
	matches := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == ".git" || name == "vendor" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		if strings.HasPrefix(filepath.Clean(path), allowedDir+string(filepath.Separator)) {
			return nil
		}
		b, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		if importsJWT(string(b)) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func importsJWT(content string) bool {
	return strings.Contains(content, `"github.com/golang-jwt/jwt/v5"`)
}
