// Package scaffold ties the pieces of project generation together: derive
// names, resolve the dependency context, look up and render the template,
// compose workspace manifests, and write the result. Each operation builds
// the complete file tree in memory before anything touches disk, so a
// failed step leaves the filesystem untouched.
package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/typhoonlabs/typhoon/internal/catalog"
	"github.com/typhoonlabs/typhoon/internal/emit"
	"github.com/typhoonlabs/typhoon/internal/manifest"
	"github.com/typhoonlabs/typhoon/internal/project"
	"github.com/typhoonlabs/typhoon/internal/render"
	"github.com/typhoonlabs/typhoon/internal/resolve"
	"github.com/typhoonlabs/typhoon/internal/workspace"
)

// placeholderProgramID is written into scaffolded source as the declared
// program ID. The real ID comes from the deploy keypair, generated on the
// first build.
const placeholderProgramID = "11111111111111111111111111111111"

// workspaceGitignore is the ignore file written at a new workspace root.
const workspaceGitignore = "/target\n**/*.rs.bk\n"

// NotAWorkspaceError reports an add invoked somewhere that is not a
// workspace root.
type NotAWorkspaceError struct {
	Dir string
}

func (e *NotAWorkspaceError) Error() string {
	return fmt.Sprintf("%s is not a typhoon workspace (no Cargo.toml with a [workspace] table)", e.Dir)
}

// Result describes a completed scaffold operation.
type Result struct {
	// Root is the directory the files were written under.
	Root string
	// Program is the program scaffolded by this invocation.
	Program project.Name
	// Paths lists every file written, relative to Root, in write order.
	Paths []string
}

// Init scaffolds a new project directory under cwd. With workspaceMode a
// workspace is created whose first program is named "<name>-program";
// otherwise the directory is a standalone program.
func Init(fsys afero.Fs, cwd, name, templateName string, workspaceMode bool, license string) (*Result, error) {
	p, err := project.Derive(name)
	if err != nil {
		return nil, err
	}
	bundle, err := lookupBundle(templateName)
	if err != nil {
		return nil, err
	}

	root := filepath.Join(cwd, p.Dir)
	if err := emit.EnsureAbsent(fsys, root); err != nil {
		return nil, err
	}

	if workspaceMode {
		return initWorkspace(fsys, cwd, root, p, bundle, license)
	}
	return initStandalone(fsys, cwd, root, p, bundle, license)
}

func initStandalone(fsys afero.Fs, cwd, root string, p project.Name, bundle catalog.Bundle, license string) (*Result, error) {
	dep := resolve.Resolve(fsys, cwd, root)
	tree, err := render.Render(bundle, buildVars(p, dep, license))
	if err != nil {
		return nil, err
	}

	if err := emit.Write(fsys, root, tree); err != nil {
		return nil, err
	}
	return &Result{Root: root, Program: p, Paths: tree.Paths()}, nil
}

func initWorkspace(fsys afero.Fs, cwd, root string, p project.Name, bundle catalog.Bundle, license string) (*Result, error) {
	first, err := project.Derive(p.Dir + "-program")
	if err != nil {
		return nil, err
	}

	dep := resolve.Resolve(fsys, cwd, filepath.Join(root, workspace.MemberPath(first.Dir)))
	programTree, err := render.Render(bundle, buildVars(first, dep, license))
	if err != nil {
		return nil, err
	}

	manifestBytes, err := workspace.Create(p.Dir, first, license).Encode()
	if err != nil {
		return nil, err
	}
	configBytes, err := manifest.New(p.Dir, first.Dir).Encode()
	if err != nil {
		return nil, err
	}
	if err := validateConfig(configBytes); err != nil {
		return nil, err
	}

	tree := render.NewFileTree()
	rootFiles := []render.FileEntry{
		{Path: "Cargo.toml", Content: manifestBytes},
		{Path: manifest.FileName, Content: configBytes},
		{Path: ".gitignore", Content: []byte(workspaceGitignore)},
		{Path: "tests/.gitkeep", Content: []byte{}},
	}
	for _, f := range rootFiles {
		if err := tree.Add(f.Path, f.Content); err != nil {
			return nil, err
		}
	}
	if err := graft(tree, workspace.MemberPath(first.Dir), programTree); err != nil {
		return nil, err
	}

	if err := emit.Write(fsys, root, tree); err != nil {
		return nil, err
	}
	return &Result{Root: root, Program: first, Paths: tree.Paths()}, nil
}

// AddProgram scaffolds an additional program into the workspace rooted at
// cwd and amends the workspace manifests to include it.
func AddProgram(fsys afero.Fs, cwd, name, templateName, license string) (*Result, error) {
	p, err := project.Derive(name)
	if err != nil {
		return nil, err
	}
	bundle, err := lookupBundle(templateName)
	if err != nil {
		return nil, err
	}

	manifestData, err := afero.ReadFile(fsys, filepath.Join(cwd, "Cargo.toml"))
	if err != nil {
		return nil, &NotAWorkspaceError{Dir: cwd}
	}
	if !workspace.IsWorkspace(manifestData) {
		return nil, &NotAWorkspaceError{Dir: cwd}
	}

	programRoot := filepath.Join(cwd, workspace.MemberPath(p.Dir))
	if err := emit.EnsureAbsent(fsys, programRoot); err != nil {
		return nil, err
	}

	manifestBytes, err := workspace.AddMember(manifestData, p)
	if err != nil {
		return nil, err
	}

	dep := resolve.Resolve(fsys, cwd, programRoot)
	programTree, err := render.Render(bundle, buildVars(p, dep, license))
	if err != nil {
		return nil, err
	}

	tree := render.NewFileTree()
	if err := tree.Add("Cargo.toml", manifestBytes); err != nil {
		return nil, err
	}
	if configBytes, err := amendConfig(fsys, cwd, p.Dir); err != nil {
		return nil, err
	} else if configBytes != nil {
		if err := tree.Add(manifest.FileName, configBytes); err != nil {
			return nil, err
		}
	}
	if err := graft(tree, workspace.MemberPath(p.Dir), programTree); err != nil {
		return nil, err
	}

	if err := emit.Write(fsys, cwd, tree); err != nil {
		return nil, err
	}
	return &Result{Root: cwd, Program: p, Paths: tree.Paths()}, nil
}

func lookupBundle(templateName string) (catalog.Bundle, error) {
	id, err := catalog.ParseID(templateName)
	if err != nil {
		return catalog.Bundle{}, err
	}
	return catalog.Lookup(id)
}

// buildVars assembles the full render context for one program.
func buildVars(p project.Name, dep resolve.Spec, license string) render.Vars {
	return render.Vars{
		"crate_name":        p.Crate,
		"binary_stem":       p.BinaryStem,
		"program_id":        placeholderProgramID,
		"dependency_spec":   dep.ManifestValue(),
		"idl_generator_dep": dep.IDLGeneratorValue(),
		"license":           license,
		"typhoon_version":   resolve.PublishedVersion,
	}
}

// graft adds every entry of sub to tree under prefix.
func graft(tree *render.FileTree, prefix string, sub *render.FileTree) error {
	for _, entry := range sub.Entries() {
		if err := tree.Add(prefix+"/"+entry.Path, entry.Content); err != nil {
			return err
		}
	}
	return nil
}

// amendConfig appends the program to typhoon.toml if the workspace has one.
// Workspaces created by older versions may lack the file; that is not an
// error, the file is simply left absent. A file that is present but fails
// schema validation aborts the operation before anything is written.
func amendConfig(fsys afero.Fs, cwd, programDir string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(cwd, manifest.FileName))
	if err != nil {
		return nil, nil
	}
	if err := validateConfig(data); err != nil {
		return nil, err
	}
	cfg, err := manifest.Decode(data)
	if err != nil {
		return nil, err
	}
	cfg.AddProgram(programDir)
	return cfg.Encode()
}

// validateConfig checks typhoon.toml bytes against the embedded schema and
// folds any issues into a single error.
func validateConfig(data []byte) error {
	result, err := manifest.Validate(data)
	if err != nil {
		return err
	}
	if result.Valid {
		return nil
	}

	msgs := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("invalid %s: %s", manifest.FileName, strings.Join(msgs, "; "))
}
