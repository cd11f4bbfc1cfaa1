// Package assist generates free-form replies for messages that match no
// tool intent. It is optional: without a configured AI provider the
// session controller falls back to a canned prompt, and the simulation
// stays fully offline.
package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"github.com/voyago/voyago/internal/config"
	"github.com/voyago/voyago/internal/i18n"
	"github.com/voyago/voyago/internal/log"
)

const systemPrompt = `You are Voyago, a concise travel assistant for a demo booking app.
You cannot access real inventory; the app searches flights and hotels itself.
Answer travel questions briefly and steer the user toward searching flights,
searching hotels or booking a trip. Reply in the user's language.`

// Assistant produces chat replies through Genkit.
type Assistant struct {
	g         *genkit.Genkit
	modelName string
	logger    log.Logger
}

// New initializes Genkit with the Google AI plugin.
// Returns an error when the config has no assist provider enabled.
func New(ctx context.Context, cfg *config.Config, logger log.Logger) (*Assistant, error) {
	if cfg == nil || !cfg.AssistEnabled() {
		return nil, fmt.Errorf("assist provider not configured")
	}
	if logger == nil {
		logger = log.NewNop()
	}

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return nil, fmt.Errorf("genkit initialization failed")
	}

	return &Assistant{
		g:         g,
		modelName: cfg.FullModelName(),
		logger:    logger,
	}, nil
}

// Reply generates one reply for the given user text.
func (a *Assistant) Reply(ctx context.Context, text string) (string, error) {
	response, err := genkit.Generate(ctx, a.g,
		ai.WithModelName(a.modelName),
		ai.WithSystem(systemPrompt),
		ai.WithPrompt(text),
	)
	if err != nil {
		return "", fmt.Errorf("generating reply: %w", err)
	}

	reply := strings.TrimSpace(response.Text())
	if reply == "" {
		a.logger.Debug("model returned an empty reply")
		return i18n.T("chat.fallback"), nil
	}
	return reply, nil
}
