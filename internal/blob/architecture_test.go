package blob

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyFacadeImportsInfra keeps artifact storage behind this package:
// everything else depends on blob.Store, never on a concrete driver under
// internal/infra/blob.
func TestOnlyFacadeImportsInfra(t *testing.T) {
	const (
		driverPrefix = "quotesynth/internal/infra/blob"
		facadePrefix = "quotesynth/internal/blob"
	)

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "quotesynth/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var violations []string
	for _, pkg := range pkgs {
		if underTree(pkg.PkgPath, facadePrefix) || underTree(pkg.PkgPath, driverPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if underTree(importPath, driverPrefix) {
				violations = append(violations, pkg.PkgPath+" imports "+importPath)
			}
		}
	}

	sort.Strings(violations)
	for _, v := range violations {
		t.Errorf("blob driver reached around the facade: %s", v)
	}
}

func underTree(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
