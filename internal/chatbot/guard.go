package chatbot

import "strings"

// SafeRedirect is the fixed reply substituted for a blocked topic. The whole
// response is replaced; nothing is redacted in place.
const SafeRedirect = "I'm sorry, but I can't talk about that topic. Let's chat about something fun instead! Would you like to hear a joke, learn a fun fact, or talk about your favorite animals?"

// Guard blocks unsafe conversation topics before they reach the language
// model. Matching is plain lowercase containment, deliberately broader than
// the word-boundary chat filter: a false positive here costs a redirect,
// a false negative costs a child an unsafe answer.
type Guard struct {
	topics []string
}

func NewGuard() *Guard {
	return &Guard{
		topics: []string{
			"violence", "violent", "kill", "murder", "fight", "weapon", "gun", "knife",
			"sex", "sexual", "naked", "nude", "porn",
			"drug", "drugs", "alcohol", "cigarette", "smoking", "weed", "marijuana",
			"suicide", "self-harm", "hurt myself", "die",
			"curse", "swear", "bad words",
		},
	}
}

// Check returns the safe redirect and true when the message touches a blocked
// topic.
func (g *Guard) Check(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, topic := range g.topics {
		if strings.Contains(lower, topic) {
			return SafeRedirect, true
		}
	}
	return "", false
}

// FileAck answers attached files with a fixed acknowledgment by type. Files
// are never inspected and never reach the guard or the model backend.
func FileAck(fileType, fileName string) (string, bool) {
	switch {
	case strings.HasPrefix(fileType, "image/"):
		return "I can see you shared a picture called \"" + fileName + "\"! That's so cool! While I can't look at pictures directly, I'd love to help you with it! Can you tell me what's in the picture? Or maybe you have a question about something you see? I'm here to help you learn and have fun!", true
	case fileType == "application/pdf":
		return "I can see you shared a PDF file called \"" + fileName + "\"! That's awesome! While I can't read PDFs directly, I'd love to help you understand it. Can you tell me what the PDF is about or read me a part of it? Then I can help explain it in a fun way!", true
	}
	return "", false
}
