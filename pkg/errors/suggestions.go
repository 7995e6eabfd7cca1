package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryDiskSpace:
		return g.generateDiskSpaceSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryExhausted:
		return g.generateExhaustedSuggestions(affectedPath)
	case CategoryConfiguration:
		return g.generateConfigurationSuggestions()
	case CategoryConnection:
		return g.generateConnectionSuggestions()
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateConfigurationSuggestions() []string {
	return []string{
		"Give a prefix, a suffix, or both (they cannot both be empty)",
		"Use a base of 0 or more",
		"Run 'seqfile --help' for the full usage",
	}
}

func (g *suggestionGenerator) generateConnectionSuggestions() []string {
	return []string{
		"Check that the host is reachable and the SSH port is open",
		"Make sure an SSH agent is running or a key exists in ~/.ssh",
		"Use the form sftp://user@host[:port]/path for remote folders",
	}
}

func (g *suggestionGenerator) generateDiskSpaceSuggestions(path string) []string {
	suggestions := []string{
		"Free up space on the target device",
		"Check available space with 'df -h'",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify disk usage for the filesystem containing "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generateExhaustedSuggestions(path string) []string {
	suggestions := []string{
		"Raise the attempt budget with --max-attempts",
		"Other writers are claiming files quickly; retry the command",
	}

	if path != "" {
		suggestions = append(suggestions, "Look for stray empty files in "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the folder exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
		suggestions = append(suggestions, "Create the folder first, e.g. 'mkdir -p' on the parent of "+path)
	} else {
		suggestions = append(suggestions, "Create the folder first; seqfile does not create directories")
	}

	return suggestions
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure you can create files in the target folder",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -ld %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -ld' on the target folder")
	}

	suggestions = append(suggestions, "Pick a folder you own, or run with appropriate permissions")

	return suggestions
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Run again with --verbose for a debug log",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
