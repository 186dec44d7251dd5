package pattern

// defaultExcludePatterns is the built-in ordered deny list. It always applies,
// even when the caller opts to skip ignore files.
var defaultExcludePatterns = []string{
	// version control metadata
	".git/",
	".svn/",
	".hg/",
	// dependency trees
	"node_modules/",
	"bower_components/",
	"vendor/",
	".venv/",
	"venv/",
	"__pycache__/",
	"site-packages/",
	".bundle/",
	// build output
	"dist/",
	"build/",
	"target/",
	"out/",
	".next/",
	".nuxt/",
	".output/",
	"bin/",
	"obj/",
	"coverage/",
	// caches and tool state
	".cache/",
	".pytest_cache/",
	".mypy_cache/",
	".ruff_cache/",
	".gradle/",
	".terraform/",
	".tox/",
	".idea/",
	".vscode/",
	".DS_Store",
	// lockfiles
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Cargo.lock",
	"poetry.lock",
	"Pipfile.lock",
	"composer.lock",
	"go.sum",
	// generated bundles and source maps
	"*.min.js",
	"*.min.css",
	"*.map",
	// logs and environment files
	"*.log",
	".env",
	".env.*",
}

// DefaultExcludes returns a copy of the built-in deny list.
func DefaultExcludes() []string {
	excludes := make([]string, len(defaultExcludePatterns))
	copy(excludes, defaultExcludePatterns)
	return excludes
}
