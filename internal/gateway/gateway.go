package gateway

// Messenger defines the interface for user-facing front ends (console, Telegram, etc.)
type Messenger interface {
	// Start begins the input loop
	Start() error
	// Send sends a message to a specific chat
	Send(chatID string, text string) error
	// Stop gracefully shuts down the gateway
	Stop() error
}

// exampleInputs are the canned utterances shown by the help command.
var exampleInputs = []string{
	"Translate 'Good Morning' into German and then multiply 5 and 6.",
	"Add 10 and 20, then translate 'Have a nice day' into German.",
	"Tell me the capital of Italy, then multiply 12 and 12.",
	"Add 2 and 2 and multiply 3 and 3.",
	"What is the distance between Earth and Mars?",
}
