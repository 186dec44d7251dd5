package classify

import (
	"path/filepath"
	"strings"
)

// languageDefinition binds a language name to the file extensions and special
// basenames it claims. Table order is significant: the first matching entry
// wins, which disambiguates extension-less names such as Dockerfile and
// Makefile.
type languageDefinition struct {
	name       string
	extensions []string
	filenames  []string
}

var languageDefinitions = []languageDefinition{
	{name: "Go", extensions: []string{".go"}},
	{name: "TypeScript", extensions: []string{".ts", ".tsx", ".mts", ".cts"}},
	{name: "JavaScript", extensions: []string{".js", ".jsx", ".mjs", ".cjs"}},
	{name: "Python", extensions: []string{".py", ".pyi", ".pyw"}},
	{name: "Rust", extensions: []string{".rs"}},
	{name: "Java", extensions: []string{".java"}},
	{name: "Kotlin", extensions: []string{".kt", ".kts"}},
	{name: "C", extensions: []string{".c", ".h"}},
	{name: "C++", extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"}},
	{name: "C#", extensions: []string{".cs"}},
	{name: "Ruby", extensions: []string{".rb", ".erb"}, filenames: []string{"rakefile", "gemfile"}},
	{name: "PHP", extensions: []string{".php"}},
	{name: "Swift", extensions: []string{".swift"}},
	{name: "Scala", extensions: []string{".scala", ".sbt"}},
	{name: "Objective-C", extensions: []string{".m", ".mm"}},
	{name: "Shell", extensions: []string{".sh", ".bash", ".zsh", ".fish"}},
	{name: "PowerShell", extensions: []string{".ps1", ".psm1"}},
	{name: "Perl", extensions: []string{".pl", ".pm"}},
	{name: "Lua", extensions: []string{".lua"}},
	{name: "R", extensions: []string{".r", ".rmd"}},
	{name: "Dart", extensions: []string{".dart"}},
	{name: "Elixir", extensions: []string{".ex", ".exs"}},
	{name: "Haskell", extensions: []string{".hs"}},
	{name: "Zig", extensions: []string{".zig"}},
	{name: "HTML", extensions: []string{".html", ".htm"}},
	{name: "CSS", extensions: []string{".css"}},
	{name: "SCSS", extensions: []string{".scss", ".sass"}},
	{name: "Vue", extensions: []string{".vue"}},
	{name: "Svelte", extensions: []string{".svelte"}},
	{name: "SQL", extensions: []string{".sql"}},
	{name: "Markdown", extensions: []string{".md", ".markdown"}},
	{name: "reStructuredText", extensions: []string{".rst"}},
	{name: "YAML", extensions: []string{".yaml", ".yml"}},
	{name: "JSON", extensions: []string{".json", ".jsonc"}},
	{name: "TOML", extensions: []string{".toml"}},
	{name: "XML", extensions: []string{".xml", ".xsl", ".xsd"}},
	{name: "Protobuf", extensions: []string{".proto"}},
	{name: "GraphQL", extensions: []string{".graphql", ".gql"}},
	{name: "Terraform", extensions: []string{".tf", ".tfvars"}},
	{name: "Dockerfile", filenames: []string{"dockerfile"}},
	{name: "Makefile", extensions: []string{".mk"}, filenames: []string{"makefile"}},
	{name: "CMake", extensions: []string{".cmake"}, filenames: []string{"cmakelists"}},
	{name: "Plain Text", extensions: []string{".txt"}},
}

// DetectLanguage resolves the language tag for a file basename. The extension
// is compared case-insensitively; extension-less names are matched by a
// case-insensitive substring check against each entry's special basenames.
// The first table entry that matches wins.
func DetectLanguage(baseName string) (string, bool) {
	lowerBaseName := strings.ToLower(baseName)
	lowerExtension := strings.ToLower(filepath.Ext(baseName))

	for _, definition := range languageDefinitions {
		if lowerExtension != "" {
			for _, extension := range definition.extensions {
				if lowerExtension == extension {
					return definition.name, true
				}
			}
		}
		for _, specialName := range definition.filenames {
			if strings.Contains(lowerBaseName, specialName) {
				return definition.name, true
			}
		}
	}
	return "", false
}

// ExtensionGlobsForLanguage expands a language name (case-insensitive) into
// the include globs covering its file extensions. The second return value is
// false when the language is not part of the table.
func ExtensionGlobsForLanguage(languageName string) ([]string, bool) {
	for _, definition := range languageDefinitions {
		if !strings.EqualFold(definition.name, languageName) {
			continue
		}
		globs := make([]string, 0, len(definition.extensions))
		for _, extension := range definition.extensions {
			globs = append(globs, "**/*"+extension)
		}
		return globs, true
	}
	return nil, false
}
