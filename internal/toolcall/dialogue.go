// internal/toolcall/dialogue.go
package toolcall

// DefaultDialoguePatterns are the seed heuristics for spotting that a model
// has stopped writing JSON and gone back to talking, while the JSON object it
// started is still unclosed. They are best effort and meant to be tuned per
// deployment through configuration.
var DefaultDialoguePatterns = []string{
	`\n[ \t]*(?:What|How|Which|Would|Could|Should|Shall|Do|Does|Did|Is|Are|Can|Let me|Let's|I can|I'll|I will|I've|I have|I'm|I am|Here|Sure|Okay|Now|Next|Please|Once|Then)\b`,
	`\n[ \t]*[A-Z][a-z']+(?:[ \t]+[a-z'][a-z',]*){2,}`,
}

// dialogueStart returns the earliest offset in s where prose appears to
// resume, or -1. s is a streaming tail, so a match that runs to the end of s
// is ignored: the word it ends on may still be growing ("Do" into "Done").
func (e *Engine) dialogueStart(s string) int {
	best := -1
	for _, re := range e.dialogue {
		for _, loc := range re.FindAllStringIndex(s, -1) {
			if loc[1] == len(s) {
				continue
			}
			if best < 0 || loc[0] < best {
				best = loc[0]
			}
			break
		}
	}
	return best
}
