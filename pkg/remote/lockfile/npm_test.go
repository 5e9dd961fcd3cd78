package lockfile

import "testing"

func TestNpmParser_PackagesMap(t *testing.T) {
	text := `{
  "name": "my-app",
  "version": "2.1.0",
  "lockfileVersion": 2,
  "packages": {
    "": {"name": "my-app", "version": "2.1.0"},
    "node_modules/left-pad": {"version": "1.3.0"},
    "node_modules/left-pad/node_modules/foo": {"version": "9.9.9"}
  }
}`
	got := NpmParser{}.Parse(text)

	if got.Name != "my-app" || got.Version != "2.1.0" {
		t.Errorf("root = %s@%s, want my-app@2.1.0", got.Name, got.Version)
	}
	if want := []string{"left-pad@1.3.0"}; !equalPairs(childPairs(got), want) {
		t.Errorf("children = %v, want %v", childPairs(got), want)
	}
}

func TestNpmParser_DocumentOrderAndDefaults(t *testing.T) {
	text := `{
  "lockfileVersion": 3,
  "packages": {
    "node_modules/zod": {"version": "3.22.4"},
    "node_modules/@babel/core": {"version": "7.23.0"},
    "node_modules/no-version": {"resolved": "file:../x"},
    "packages/workspace-a": {"version": "0.1.0"},
    "node_modules/@babel/core/node_modules/semver": {"version": "6.3.1"}
  }
}`
	got := NpmParser{}.Parse(text)

	if got.Name != "root" || got.Version != "0.0.0" {
		t.Errorf("root = %s@%s, want root@0.0.0", got.Name, got.Version)
	}
	want := []string{"zod@3.22.4", "@babel/core@7.23.0", "no-version@0.0.0"}
	if !equalPairs(childPairs(got), want) {
		t.Errorf("children = %v, want %v", childPairs(got), want)
	}
}

func TestNpmParser_LegacyDependencies(t *testing.T) {
	text := `{
  "name": "legacy",
  "version": "1.0.0",
  "lockfileVersion": 1,
  "dependencies": {
    "express": {"version": "4.17.1", "dependencies": {"debug": {"version": "2.6.9"}}},
    "debug": {"version": "4.3.4"}
  }
}`
	got := NpmParser{}.Parse(text)

	want := []string{"express@4.17.1", "debug@4.3.4"}
	if !equalPairs(childPairs(got), want) {
		t.Errorf("children = %v, want %v", childPairs(got), want)
	}
}

func TestNpmParser_PackagesWinOverLegacy(t *testing.T) {
	text := `{
  "packages": {"": {}, "node_modules/a": {"version": "1.0.0"}},
  "dependencies": {"b": {"version": "2.0.0"}}
}`
	got := NpmParser{}.Parse(text)
	if want := []string{"a@1.0.0"}; !equalPairs(childPairs(got), want) {
		t.Errorf("children = %v, want %v", childPairs(got), want)
	}
}

func TestNpmParser_NoEntries(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty object", `{}`},
		{"empty maps", `{"packages": {}, "dependencies": {}}`},
		{"null", `null`},
		{"array", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSentinel(t, NpmParser{}.Parse(tt.text))
		})
	}
}

func TestNpmParser_NonStringNameIgnored(t *testing.T) {
	got := NpmParser{}.Parse(`{"name": 42, "version": true, "dependencies": {"a": {"version": "1.0.0"}}}`)
	if got.Name != "root" || got.Version != "0.0.0" {
		t.Errorf("root = %s@%s, want root@0.0.0", got.Name, got.Version)
	}
	if got.Len() != 1 {
		t.Errorf("children = %d, want 1", got.Len())
	}
}

func TestNpmParser_ByteOrderMark(t *testing.T) {
	text := "\ufeff{\"name\":\"web\",\"version\":\"1.0.0\",\"packages\":{\"node_modules/a\":{\"version\":\"1.2.3\"}}}"
	got := NpmParser{}.Parse(text)
	if got.Name != "web" {
		t.Errorf("root = %s, want web", got.Name)
	}
	if want := []string{"a@1.2.3"}; !equalPairs(childPairs(got), want) {
		t.Errorf("children = %v, want %v", childPairs(got), want)
	}
}
