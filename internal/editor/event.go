// Package editor はイベント・提出・カテゴリ・プロフィールの編集状態と保存処理をまとめます。
package editor

import (
	"context"
	"fmt"
	"net/http"

	"submitserver/internal/form"
	"submitserver/internal/saver"
	"submitserver/models"
)

// EventEditor は管理者のイベント編集です。
type EventEditor struct {
	remote *saver.Remote
	form   *form.State[models.EventRequest]
	saver  *saver.Coordinator[models.EventRequest, models.Event]
}

func NewEventEditor(remote *saver.Remote, initial *models.EventRequest) *EventEditor {
	e := &EventEditor{remote: remote, form: form.New(initial, nil)}
	e.saver = saver.New[models.EventRequest, models.Event](remote, http.MethodPost, "/events", saver.Options[models.EventRequest]{
		CanSave: e.form.Valid,
	})
	return e
}

func (e *EventEditor) Value() models.EventRequest              { return e.form.Value() }
func (e *EventEditor) Errors() map[string]string               { return e.form.Errors() }
func (e *EventEditor) Track(initial *models.EventRequest) bool { return e.form.Track(initial) }

func (e *EventEditor) SetField(name string, value any) (models.EventRequest, error) {
	return e.form.SetField(name, value)
}

// AddGenre はジャンルを末尾に追加します。
func (e *EventEditor) AddGenre(genre string) (models.EventRequest, error) {
	genres := append(append([]string(nil), e.form.Value().Genres...), genre)
	return e.form.SetField("genres", genres)
}

// RemoveGenre は i 番目のジャンルを削除します。
func (e *EventEditor) RemoveGenre(i int) (models.EventRequest, error) {
	current := e.form.Value().Genres
	if i < 0 || i >= len(current) {
		return e.form.Value(), fmt.Errorf("editor: genre index %d out of range", i)
	}
	genres := append(append([]string(nil), current[:i]...), current[i+1:]...)
	return e.form.SetField("genres", genres)
}

// Save はイベントを保存し、新規作成だった場合は以降の保存が更新になるよう ID を反映します。
func (e *EventEditor) Save(ctx context.Context) (*models.Event, error) {
	saved, err := e.saver.Save(ctx, e.form.Value())
	if err != nil || saved == nil {
		return saved, err
	}
	if v := e.form.Value(); v.ID == nil {
		id := saved.ID
		v.ID = &id
		e.form.Replace(v)
	}
	return saved, nil
}

func (e *EventEditor) Saving() bool          { return e.saver.Saving() }
func (e *EventEditor) SaveErr() *saver.Error { return e.saver.Err() }

// Delete はイベントを削除します。未保存のイベントは削除できません。
func (e *EventEditor) Delete(ctx context.Context) error {
	v := e.form.Value()
	if v.ID == nil {
		return fmt.Errorf("editor: event has not been saved")
	}
	return e.remote.Do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", *v.ID), nil, nil)
}
