package chat

import "fmt"

// SystemPrompt is prepended to every outgoing request.
const SystemPrompt = `You are an intelligent AI assistant running from the command line.
You can help with:
- Answering questions and providing information
- Writing and analyzing code
- File operations and system tasks
- Web searches and research
- Creative writing and brainstorming
- Problem solving and analysis

Be helpful, accurate, and concise in your responses.`

const (
	DefaultLanguage = "python"

	// MaxExcerptChars bounds how much of a file is embedded in an analysis
	// prompt. Longer files are summarized from their prefix only.
	MaxExcerptChars = 2000
)

func CodePrompt(description, language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	return fmt.Sprintf(`Generate %s code for the following description:

%s

Please provide:
1. Complete, working code
2. Brief explanation of the code
3. Usage examples if applicable
`, language, description)
}

// AnalysisPrompt embeds excerpt verbatim; size is the full file length in
// characters.
func AnalysisPrompt(path string, size int, excerpt string) string {
	return fmt.Sprintf(`Analyze this file and provide insights:

File: %s
Size: %d characters
Content:
%s...

Please provide:
1. File type and purpose
2. Key components or functions
3. Potential issues or improvements
4. Summary
`, path, size, excerpt)
}

// SearchPlaceholder is what SearchWeb answers; no search backend exists.
func SearchPlaceholder(query string) string {
	return fmt.Sprintf("Web search for '%s' would be implemented here. Consider using DuckDuckGo API or similar.", query)
}

// excerpt returns the first n runes of s.
func excerpt(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
