package aitools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const LANG_ENGLISH = "en"

// LANG_UNKNOWN is what the detector returns when it cannot classify the
// input; callers fall back to the language the request declared.
const LANG_UNKNOWN = "unk"

// IntentResult is the classifier's verdict on one user question.
type IntentResult struct {
	QueryIntent string `json:"query_intent"`
	Response    string `json:"response"`
	Error       string `json:"error,omitempty"`
}

// Client bundles the language and intent providers the orchestrator and
// flow services depend on. Implementations wrap remote model endpoints;
// the engine only sees settled results.
type Client interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, from string, to string, text string) (string, error)
	SpeechToText(ctx context.Context, base64Audio string, language string) (string, error)
	TextToSpeech(ctx context.Context, text string, language string) (string, error)
	ClassifyIntent(ctx context.Context, sessionId string, userId string, query string) (*IntentResult, error)
}

type httpClient struct {
	baseUrl string
	client  *http.Client
}

var _ Client = new(httpClient)

func NewHttpClient(baseUrl string) *httpClient {
	return &httpClient{
		baseUrl: baseUrl,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ai tools returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *httpClient) DetectLanguage(ctx context.Context, text string) (string, error) {
	var res struct {
		Language string `json:"language"`
	}
	err := c.post(ctx, "/text_lang_detection", map[string]string{"text": text}, &res)
	if err != nil {
		return "", err
	}
	return res.Language, nil
}

func (c *httpClient) Translate(ctx context.Context, from string, to string, text string) (string, error) {
	var res struct {
		Text  string `json:"text"`
		Error string `json:"error"`
	}
	err := c.post(ctx, "/text_translation", map[string]string{
		"source": from,
		"target": to,
		"text":   text,
	}, &res)
	if err != nil {
		return "", err
	}
	if res.Text == "" {
		return "", fmt.Errorf("translation failed: %s", res.Error)
	}
	return res.Text, nil
}

func (c *httpClient) SpeechToText(ctx context.Context, base64Audio string, language string) (string, error) {
	var res struct {
		Text  string `json:"text"`
		Error string `json:"error"`
	}
	err := c.post(ctx, "/speech_to_text", map[string]string{
		"audio":    base64Audio,
		"language": language,
	}, &res)
	if err != nil {
		return "", err
	}
	if res.Error != "" {
		return "", fmt.Errorf("speech to text failed: %s", res.Error)
	}
	return res.Text, nil
}

func (c *httpClient) TextToSpeech(ctx context.Context, text string, language string) (string, error) {
	var res struct {
		Audio string `json:"audio"`
		Error string `json:"error"`
	}
	err := c.post(ctx, "/text_to_speech", map[string]string{
		"text":     text,
		"language": language,
	}, &res)
	if err != nil {
		return "", err
	}
	if res.Error != "" {
		return "", fmt.Errorf("text to speech failed: %s", res.Error)
	}
	return res.Audio, nil
}

func (c *httpClient) ClassifyIntent(ctx context.Context, sessionId string, userId string, query string) (*IntentResult, error) {
	var res IntentResult
	err := c.post(ctx, "/intent_classification", map[string]string{
		"sessionId": sessionId,
		"userId":    userId,
		"query":     query,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, fmt.Errorf("%s, please try again.", res.Error)
	}
	return &res, nil
}
