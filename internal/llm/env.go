package llm

// FromEnv picks a client from API keys in the environment, looked up with getenv.
// OPENAI_API_KEY, then GROQ_API_KEY, then CURSOR_API_KEY (falling back to OpenAI when both are set),
// then OLLAMA_HOST. Returns nil when none is set.
func FromEnv(getenv func(string) string) Client {
	openAI := getenv("OPENAI_API_KEY")
	switch {
	case getenv("CURSOR_API_KEY") != "" && openAI != "":
		return &Fallback{Primary: NewCursor(getenv("CURSOR_API_KEY")), Secondary: NewOpenAI(openAI)}
	case openAI != "":
		return NewOpenAI(openAI)
	case getenv("GROQ_API_KEY") != "":
		return NewGroq(getenv("GROQ_API_KEY"))
	case getenv("CURSOR_API_KEY") != "":
		return NewCursor(getenv("CURSOR_API_KEY"))
	case getenv("OLLAMA_HOST") != "":
		return NewOllama(getenv("OLLAMA_HOST"))
	}
	return nil
}

// DefaultModel is the model to use with c when the preferences name none.
func DefaultModel(c Client) string {
	if _, ok := c.(*Ollama); ok {
		return DefaultOllamaModel
	}
	return "gpt-4o-mini"
}
