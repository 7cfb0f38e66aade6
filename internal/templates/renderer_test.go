package templates

import (
	"strings"
	"testing"
)

func TestRendererRender(t *testing.T) {
	r := Renderer{}
	out, err := r.Render("greet", "Hello {{.Name}}", map[string]string{"Name": "Patient"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello Patient" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := r.Render("bad", "Hello {{.Missing}}", map[string]string{"Name": "x"}); err == nil {
		t.Fatalf("expected error for missing key")
	}
	if _, err := r.Render("empty", "", nil); err == nil {
		t.Fatalf("expected error for empty template")
	}
}

func TestRendererDefaultFunc(t *testing.T) {
	out, err := Renderer{}.Render("notes", `{{default "None" .Notes}}`, map[string]string{"Notes": "  "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "None" {
		t.Fatalf("expected fallback, got %q", out)
	}
}

func TestRendererRenderHTMLEscapes(t *testing.T) {
	out, err := Renderer{}.RenderHTML("row", "<td>{{.Name}}</td>", map[string]string{"Name": "<script>x</script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected escaped output, got %q", out)
	}
}
