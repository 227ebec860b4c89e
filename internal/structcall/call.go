package structcall

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"intervo/internal/llm"
)

// Target is the destination of a structured call: a pointer to the expected
// output type carrying its JSON-schema document and any cross-field rules
// that a schema document cannot express.
type Target interface {
	JSONSchema() string
	Validate() error
}

// Options bounds one structured call.
type Options struct {
	Role        string
	MaxAttempts int           // fresh invocations, including the first (min 1)
	Timeout     time.Duration // per-invocation timeout (0 = none)
	Chat        llm.ChatOptions

	// sleep is swapped out in tests; nil means time.Sleep.
	sleep func(time.Duration)
}

const repairInstruction = "You returned invalid JSON. Return ONLY valid JSON that conforms " +
	"to the schema. No text before or after. No markdown fences."

// ForJSON sends messages to the client and decodes the response into target.
// On the first extraction or validation failure it issues exactly one
// repair round-trip (resend the bad text plus the schema, ask for JSON
// only); every further recovery is a fresh invocation with linearly
// increasing backoff (0.5s × attempt index). Exhausting attempts is the
// only failure mode: the returned error is always a *CallError.
func ForJSON(ctx context.Context, client llm.Client, messages []llm.ChatMessage, target Target, opts Options) error {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	sleep := opts.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	var lastResponse string
	repairUsed := false

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return &CallError{Role: opts.Role, LastResponse: clip(lastResponse), Err: ctx.Err()}
			default:
			}
			sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}

		content, err := invoke(ctx, client, messages, opts)
		if err != nil {
			lastErr = err
			continue
		}
		lastResponse = content

		if err := decodeAndValidate(content, target); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if repairUsed {
			continue
		}
		repairUsed = true

		repaired, err := invoke(ctx, client, repairMessages(content, target.JSONSchema()), opts)
		if err != nil {
			lastErr = err
			continue
		}
		lastResponse = repaired
		if err := decodeAndValidate(repaired, target); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	return &CallError{Role: opts.Role, LastResponse: clip(lastResponse), Err: lastErr}
}

func invoke(ctx context.Context, client llm.Client, messages []llm.ChatMessage, opts Options) (string, error) {
	callCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	resp, err := client.Chat(callCtx, messages, opts.Chat)
	if err != nil {
		return "", fmt.Errorf("chat call failed: %w", err)
	}
	if resp.Content == "" {
		return "", fmt.Errorf("model returned empty content")
	}
	return resp.Content, nil
}

func repairMessages(badText, schemaJSON string) []llm.ChatMessage {
	return []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: repairInstruction},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Schema:\n%s\n\nBad JSON:\n%s\n\nAnswer:", schemaJSON, badText)},
	}
}

// decodeAndValidate runs the full pipeline on one piece of model text:
// extraction, schema validation, typed decode, cross-field checks.
func decodeAndValidate(content string, target Target) error {
	extracted, err := ExtractJSONObject(content)
	if err != nil {
		return err
	}

	schemaLoader := gojsonschema.NewStringLoader(target.JSONSchema())
	documentLoader := gojsonschema.NewStringLoader(extracted)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return &ValidationError{Reasons: reasons}
	}

	if err := json.Unmarshal([]byte(extracted), target); err != nil {
		return fmt.Errorf("failed to decode validated JSON: %w", err)
	}
	if err := target.Validate(); err != nil {
		return &ValidationError{Reasons: []string{err.Error()}}
	}
	return nil
}
