package biascheck

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	yandexgptclient "github.com/sheeiavellie/go-yandexgpt"

	"perf-track-backend/config"
)

const classifyPrompt = "You are a reviewer of workplace feedback. Classify the following " +
	"performance review text for biased or discriminatory language. Answer with a short " +
	"JSON object: {\"label\": \"biased\"|\"neutral\", \"explanation\": \"...\"}."

// Provider runs the external bias classification. The answer is returned as
// an opaque blob, callers persist it without interpreting it.
type Provider interface {
	CheckReview(ctx context.Context, reviewText string) (result json.RawMessage, err error)
}

var Instance Provider

func NewHandler() {
	if !*config.Conf.BiasCheck.Enabled {
		Instance = disabled{}
		return
	}
	Instance = impl{
		client:    yandexgptclient.NewYandexGPTClientWithIAMToken(config.Conf.BiasCheck.IAMToken),
		catalogID: config.Conf.BiasCheck.CatalogID,
	}
}

type impl struct {
	client    *yandexgptclient.YandexGPTClient
	catalogID string
}

func (i impl) CheckReview(ctx context.Context, reviewText string) (json.RawMessage, error) {
	request := yandexgptclient.YandexGPTRequest{
		ModelURI: yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModelLite),
		CompletionOptions: yandexgptclient.YandexGPTCompletionOptions{
			Stream:      false,
			Temperature: 0.0,
			MaxTokens:   500,
		},
		Messages: []yandexgptclient.YandexGPTMessage{
			{
				Role: yandexgptclient.YandexGPTMessageRoleSystem,
				Text: classifyPrompt,
			},
			{
				Role: yandexgptclient.YandexGPTMessageRoleUser,
				Text: reviewText,
			},
		},
	}

	response, err := i.client.CreateRequest(ctx, request)
	if err != nil {
		return nil, errors.Wrap(err, "bias classification request failed")
	}
	if len(response.Result.Alternatives) == 0 {
		return nil, errors.New("bias classification returned no alternatives")
	}
	answer := response.Result.Alternatives[0].Message.Text
	blob, err := json.Marshal(map[string]string{"raw": answer})
	if err != nil {
		return nil, errors.Wrap(err, "failed to wrap classification answer")
	}
	return blob, nil
}

type disabled struct{}

func (disabled) CheckReview(ctx context.Context, reviewText string) (json.RawMessage, error) {
	return nil, errors.New("bias check is not enabled")
}
