// Package llm implements the language-model collaborators: extraction of a
// recipe from page text, group label assignment, and free-text revision.
//
// Providers (OpenAI, OpenRouter, Anthropic) only implement Completer, a
// single system+user exchange. Collaborator builds the prompts, retries
// failed exchanges, and pulls the JSON object out of the reply.
package llm
