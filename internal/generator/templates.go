package generator

import (
	"fmt"
	"text/template"

	"github.com/firefly-engineering/nix-install-pkgs/internal/nix"
)

// ExprData holds all data needed to render the install expression.
type ExprData struct {
	RepoLockedURL       string // Locked URL of the working directory flake ("" when none)
	InputsFromLockedURL string // Locked URL of the inputs-from flake ("" when not given)
	Nixpkgs             string // Nix expression evaluating to a nixpkgs source
	Platform            string // System double, e.g. x86_64-linux
	Expr                string // Caller-supplied expression, inserted verbatim
}

// getFlake renders a binding for a locked flake URL. An unresolved URL binds
// an empty attribute set so the expression still evaluates.
func getFlake(lockedURL string) string {
	if lockedURL == "" {
		return "{ }"
	}
	return fmt.Sprintf(`builtins.getFlake("%s")`, nix.Escape(lockedURL))
}

const exprTemplateText = `let
  repoFlake = {{.RepoLockedURL | getFlake}};
  inputsFromFlake = {{.InputsFromLockedURL | getFlake}};
  nixpkgs = {{.Nixpkgs}};
  pkgs = (import nixpkgs { system = "{{.Platform | nixEscape}}"; });
in {{.Expr}}`

// exprTemplate is the parsed template, initialized at package load time.
var exprTemplate *template.Template

func init() {
	funcs := template.FuncMap{
		"getFlake":  getFlake,
		"nixEscape": nix.Escape,
	}
	exprTemplate = template.Must(template.New("expr").Funcs(funcs).Parse(exprTemplateText))
}
