package lockfile

import (
	"encoding/json"
	"testing"
)

func TestEmptyInputReturnsSentinel(t *testing.T) {
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			got := Parse("", k)
			assertSentinel(t, got)
		})
	}
}

func TestGarbageInputReturnsSentinel(t *testing.T) {
	inputs := []string{"{not json", "[1,2,3]", "\x00\x01\x02", "packages:\n\tnothing here"}
	for _, k := range Kinds {
		for _, in := range inputs {
			got := Parse(in, k)
			if got.Len() != 0 {
				t.Errorf("Parse(%q, %s) children = %d, want 0", in, k, got.Len())
			}
		}
	}
}

func TestParseUnknownKind(t *testing.T) {
	assertSentinel(t, Parse(`{"packages":{"node_modules/a":{"version":"1.0.0"}}}`, Kind("bun")))
	if For(Kind("bun")) != nil {
		t.Error("For(unknown) should be nil")
	}
}

func TestSentinelSerializesEmptyChildren(t *testing.T) {
	data, err := json.Marshal(EmptyRoot())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"root","version":"0.0.0","children":[]}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"npm", KindNpm, false},
		{"Yarn", KindYarn, false},
		{" pnpm ", KindPnpm, false},
		{"bun", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestKindFilename(t *testing.T) {
	want := map[Kind]string{
		KindNpm:  "package-lock.json",
		KindYarn: "yarn.lock",
		KindPnpm: "pnpm-lock.yaml",
		"other":  "",
	}
	for k, name := range want {
		if got := k.Filename(); got != name {
			t.Errorf("%s.Filename() = %q, want %q", k, got, name)
		}
	}
}

func assertSentinel(t *testing.T, n *Node) {
	t.Helper()
	if n == nil {
		t.Fatal("got nil node")
	}
	if n.Name != "root" || n.Version != "0.0.0" {
		t.Errorf("root = %s@%s, want root@0.0.0", n.Name, n.Version)
	}
	if n.Children == nil || len(n.Children) != 0 {
		t.Errorf("children = %#v, want empty non-nil slice", n.Children)
	}
	if n.IsCircular != nil {
		t.Error("IsCircular should be unset")
	}
}

func childPairs(n *Node) []string {
	out := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c.Name+"@"+c.Version)
	}
	return out
}

func equalPairs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
