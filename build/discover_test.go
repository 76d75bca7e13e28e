package build

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
)

func TestDiscover_DefaultExtensions(t *testing.T) {
	_, env := setupTestEnv(t)
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"app.js":            "export const a = 1;\n",
		"pages/10.jsx":      "export const b = 2;\n",
		"pages/9.mjs":       "export const c = 3;\n",
		"comp.tsx":          "export const C = (p: Props) => <div {...p} />;\n",
		"model.ts":          "export interface Model { id: number }\n",
		"types.d.ts":        "export declare const y: number;\n",
		".cache/gen.js":     "export const d = 4;\n",
		"dist/bundle.js":    "export const e = 5;\n",
		"node_modules/x.js": "export const f = 6;\n",
	})

	files, err := discover(context.Background(), src, "", env.Cfg.Compiler.Extensions, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("discover() error = %v", err)
	}
	for i, f := range files {
		files[i], _ = filepath.Rel(src, f)
		files[i] = filepath.ToSlash(files[i])
	}
	want := []string{"app.js", "pages/9.mjs", "pages/10.jsx"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("discovered modules mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_Canceled(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"app.js": "export const a = 1;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := discover(ctx, src, "", []string{".js"}, zaptest.NewLogger(t)); err == nil {
		t.Fatal("discover() on canceled context must fail")
	}
}
