package translate

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/similarity"
)

const gptSystemPrompt = `You are a cinematic translator for movie dialogue.
When given user input containing:
  - src_text: the original text in the source language
  - src_lang: source language code (e.g. "en", "ko")
  - tar_lang: target language code (e.g. "en", "ko")

You must:
  1. Translate src_text from src_lang into tar_lang using adaptive and creative translation, not word-for-word.
  2. Preserve a dramatic, cinematic tone, as if delivering a powerful line on screen.
  3. If src_text is an idiom or fixed expression, render its well-known idiomatic equivalent in the target language.
  4. Ensure the result feels like a natural, emotionally impactful movie dialogue.
  5. Output only the final translated line as a single plain string (no JSON or extra commentary).`

// GPTClient translates using an OpenAI chat completion
type GPTClient struct {
	client openai.Client
	model  string
}

// NewGPTClient creates the client. The API key is taken from the environment
func NewGPTClient() *GPTClient {
	model := cmdapp.Config.GetString("gpt.model")
	if model == "" {
		model = "gpt-4.1-nano"
	}
	return &GPTClient{client: openai.NewClient(), model: model}
}

// Translate invokes the chat completion
func (gc *GPTClient) Translate(ctx context.Context, req *similarity.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 50*time.Second)
	defer cancel()

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(gptSystemPrompt),
		openai.UserMessage("src_text: " + req.InputText + "\n" +
			"src_lang: " + string(req.InputLanguage) + "\n" +
			"tar_lang: " + string(req.OutputLanguage)),
	}

	res, err := gc.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    gc.model,
	})
	if err != nil {
		return "", errors.Wrap(err, "OpenAI API error")
	}
	if len(res.Choices) == 0 {
		return "", errors.New("OpenAI API returned no choices")
	}
	return strings.TrimSpace(res.Choices[0].Message.Content), nil
}
