package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/xdom/format"
	"github.com/signadot/xdom/naming"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want *Config
		err  bool
	}{
		{
			name: "empty",
			in:   "",
			want: Default(),
		},
		{
			name: "full",
			in:   "format: svg\nindent: 4\ncolor: never\nnaming: kebab-case\ndeclaration: true\nkeepSpace: true\ndenyUnknown: true\n",
			want: &Config{
				Format:      "svg",
				Indent:      4,
				Color:       "never",
				Naming:      "kebab-case",
				Declaration: true,
				KeepSpace:   true,
				DenyUnknown: true,
			},
		},
		{
			name: "partial",
			in:   "indent: 0\n",
			want: &Config{Format: "xml", Color: "auto"},
		},
		{name: "bad format", in: "format: json\n", err: true},
		{name: "bad indent", in: "indent: 9\n", err: true},
		{name: "negative indent", in: "indent: -1\n", err: true},
		{name: "bad color", in: "color: sometimes\n", err: true},
		{name: "bad naming", in: "naming: wavy\n", err: true},
		{name: "unknown field", in: "colour: auto\n", err: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse([]byte(tc.in))
			if tc.err {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Find(sub)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" {
		t.Skipf("found an enclosing %s at %s", FileName, cfg.Path)
	}
	p := filepath.Join(root, "a", FileName)
	if err := os.WriteFile(p, []byte("format: atom\nnaming: snake\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Find(sub)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != p {
		t.Errorf("Path = %q, want %q", cfg.Path, p)
	}
	if cfg.GetFormat() != format.AtomFormat {
		t.Errorf("format = %v", cfg.GetFormat())
	}
	if cfg.GetNaming() != naming.Snake {
		t.Errorf("naming = %v", cfg.GetNaming())
	}
	if err := os.WriteFile(p, []byte("indent: lots\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Find(sub); err == nil {
		t.Error("expected error for invalid file")
	}
}
