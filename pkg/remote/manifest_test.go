package remote

import (
	"reflect"
	"testing"
)

func TestToPackageList(t *testing.T) {
	got := ToPackageList(
		Requirements{{Name: "a", Range: "^1.2.3"}},
		Requirements{{Name: "b", Range: "~2.0.0"}},
	)
	want := []PackageEntry{
		{Name: "a", Version: "1.2.3", IsDev: false},
		{Name: "b", Version: "2.0.0", IsDev: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToPackageList() = %+v, want %+v", got, want)
	}
}

func TestToPackageListKeepsDuplicatesAcrossGroups(t *testing.T) {
	got := ToPackageList(
		Requirements{{Name: "typescript", Range: "5.0.0"}},
		Requirements{{Name: "typescript", Range: "^5.2.0"}},
	)
	if len(got) != 2 || got[0].IsDev || !got[1].IsDev {
		t.Errorf("ToPackageList() = %+v", got)
	}
}

func TestStripRangeOperator(t *testing.T) {
	tests := map[string]string{
		"^1.2.3":      "1.2.3",
		"~1.2.3":      "1.2.3",
		">1.0.0":      "1.0.0",
		">=1.0.0":     "=1.0.0",
		"<2":          "2",
		"=1.0.0":      "1.0.0",
		"1.2.3":       "1.2.3",
		"latest":      "latest",
		"":            "",
		"workspace:*": "workspace:*",
	}
	for in, want := range tests {
		if got := StripRangeOperator(in); got != want {
			t.Errorf("StripRangeOperator(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractManifest(t *testing.T) {
	text := `{
  "name": "my-app",
  "version": "1.0.0",
  "dependencies": {
    "zod": "^3.22.0",
    "express": "^4.18.2",
    "local": {"path": "../local"}
  },
  "devDependencies": {
    "jest": "^29.0.0"
  }
}`
	m := ExtractManifest(text)

	if m.Name != "my-app" || m.Version != "1.0.0" {
		t.Errorf("name/version = %q/%q", m.Name, m.Version)
	}
	wantDeps := Requirements{{"zod", "^3.22.0"}, {"express", "^4.18.2"}}
	if !reflect.DeepEqual(m.Dependencies, wantDeps) {
		t.Errorf("Dependencies = %+v, want %+v", m.Dependencies, wantDeps)
	}
	wantDev := Requirements{{"jest", "^29.0.0"}}
	if !reflect.DeepEqual(m.DevDependencies, wantDev) {
		t.Errorf("DevDependencies = %+v, want %+v", m.DevDependencies, wantDev)
	}
}

func TestExtractManifestLenient(t *testing.T) {
	text := `{
  // pinned for CI
  "dependencies": {
    "left-pad": "^1.3.0",
  },
}`
	m := ExtractManifest(text)
	if v, ok := m.Dependencies.Get("left-pad"); !ok || v != "^1.3.0" {
		t.Errorf("Get(left-pad) = %q, %v", v, ok)
	}
}

func TestExtractManifestDuplicateKeys(t *testing.T) {
	m := ExtractManifest(`{"dependencies": {"a": "1.0.0", "b": "2.0.0", "a": "3.0.0"}}`)
	want := Requirements{{"a", "3.0.0"}, {"b", "2.0.0"}}
	if !reflect.DeepEqual(m.Dependencies, want) {
		t.Errorf("Dependencies = %+v, want %+v", m.Dependencies, want)
	}
}

func TestExtractManifestInvalid(t *testing.T) {
	for _, in := range []string{"", "not json", "[]", `"string"`, `{"dependencies": `} {
		m := ExtractManifest(in)
		if len(m.Dependencies) != 0 || len(m.DevDependencies) != 0 {
			t.Errorf("ExtractManifest(%q) = %+v, want empty", in, m)
		}
	}
}

func TestExtractManifestMissingGroups(t *testing.T) {
	m := ExtractManifest(`{"name": "bare"}`)
	if m.Dependencies == nil || m.DevDependencies == nil {
		t.Error("missing groups should be empty, not nil")
	}
	if got := ToPackageList(m.Dependencies, m.DevDependencies); len(got) != 0 {
		t.Errorf("ToPackageList() = %+v, want empty", got)
	}
}

func TestRefs(t *testing.T) {
	entries := []PackageEntry{{Name: "a", Version: "1"}, {Name: "b", Version: "2"}, {Name: "c", Version: "3"}}

	if got := Refs(entries, 2); len(got) != 2 || got[1] != (PackageRef{"b", "2"}) {
		t.Errorf("Refs(limit=2) = %+v", got)
	}
	if got := Refs(entries, 0); len(got) != 3 {
		t.Errorf("Refs(limit=0) = %+v", got)
	}
	if got := Refs(nil, 50); got == nil || len(got) != 0 {
		t.Errorf("Refs(nil) = %#v, want empty slice", got)
	}
}

func TestExtractManifestByteOrderMark(t *testing.T) {
	m := ExtractManifest("\ufeff{\"dependencies\":{\"a\":\"1.0.0\"}}")
	want := Requirements{{"a", "1.0.0"}}
	if !reflect.DeepEqual(m.Dependencies, want) {
		t.Errorf("Dependencies = %+v, want %+v", m.Dependencies, want)
	}
}
