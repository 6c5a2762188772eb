package clients

import (
	"context"
	"errors"
)

const (
	assistantStartPath   = "/api/ai/bedrock/start"
	assistantMessagePath = "/api/ai/bedrock/message"
)

var ErrEmptySession = errors.New("assistant returned an empty session id")

type startSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type sendMessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type sendMessageResponse struct {
	Response string `json:"response"`
}

type AssistantClient struct{ c *Client }

func NewAssistantClient(c *Client) *AssistantClient { return &AssistantClient{c: c} }

func (ac *AssistantClient) StartSession(ctx context.Context) (string, error) {
	var out startSessionResponse
	if err := ac.c.postJSON(ctx, assistantStartPath, nil, &out); err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", ErrEmptySession
	}
	return out.SessionID, nil
}

func (ac *AssistantClient) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	var out sendMessageResponse
	err := ac.c.postJSON(ctx, assistantMessagePath, sendMessageRequest{
		SessionID: sessionID,
		Message:   message,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Response, nil
}
