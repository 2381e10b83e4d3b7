// Package saver は1つのエンドポイントへの保存処理を包み、同時に1件だけ実行されるようにします。
package saver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// UnexpectedMessage はサーバーからメッセージが得られなかった場合の表示用メッセージです。
const UnexpectedMessage = "An unexpected error occurred. Please try again later."

// Error は保存失敗時の、そのまま表示できるメッセージを持つエラーです。
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Remote はAPIサーバーへのクライアントです。
type Remote struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewRemote(baseURL, token string) *Remote {
	return &Remote{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client:  http.DefaultClient,
	}
}

// Do は body をJSONで送り、200なら応答を out にデコードします。
// それ以外は {message} を読み取って *Error を返します。
func (r *Remote) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: UnexpectedMessage, cause: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return &Error{Message: UnexpectedMessage, cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return &Error{Message: UnexpectedMessage, cause: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil || payload.Message == "" {
			payload.Message = UnexpectedMessage
		}
		return &Error{Status: res.StatusCode, Message: payload.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &Error{Status: res.StatusCode, Message: UnexpectedMessage, cause: err}
	}
	return nil
}

// AsError は err を *Error に変換します。
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Message: UnexpectedMessage, cause: err}
}
