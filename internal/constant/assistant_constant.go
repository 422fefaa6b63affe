package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"

	// Seeded as the first assistant message of every new conversation.
	WelcomeMessage = "Share your role target, years of experience, and 3 measurable wins. I will shape it into a stronger resume."

	// Fallback conversation title until the first real user message
	// promotes its own.
	DefaultConversationTitle = "New Resume"

	// In-process event bus topic carrying extracted profile facts to the
	// async consumer.
	ProfileFactsTopic = "PROFILE_FACTS"

	// Title promotion keeps conversation names scannable in the sidebar.
	ConversationTitleMaxLen = 50
)
