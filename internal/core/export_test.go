package core

// Exported variables.
var (
	ResponseFileWordsForTest = responseFileWords
	StripPrefixForTest       = stripPrefix
)

// ResultStateForTest returns the state of an option result as text.
func ResultStateForTest(res *OptionResult) string {
	return res.state.String()
}
