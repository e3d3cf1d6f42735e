package entities

// DialogueEntry is one line waiting in the dialogue box
type DialogueEntry struct {
	Text    string
	Speaker string
}
