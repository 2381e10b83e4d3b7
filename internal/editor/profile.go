package editor

import (
	"context"
	"net/http"

	"submitserver/internal/form"
	"submitserver/internal/saver"
	"submitserver/internal/validation"
	"submitserver/models"
)

type profileResult struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// ProfileEditor はログイン中のユーザーのプロフィール編集です。
type ProfileEditor struct {
	form  *form.State[models.ProfileRequest]
	saver *saver.Coordinator[models.ProfileRequest, profileResult]
}

func NewProfileEditor(remote *saver.Remote, initial *models.ProfileRequest) *ProfileEditor {
	e := &ProfileEditor{
		form: form.New(initial, func(v models.ProfileRequest) map[string]string {
			return validation.Map(v.Normalize())
		}),
	}
	e.saver = saver.New[models.ProfileRequest, profileResult](remote, http.MethodPost, "/user/update", saver.Options[models.ProfileRequest]{
		CanSave: e.form.Valid,
		Format:  func(v models.ProfileRequest) any { return v.Normalize() },
	})
	return e
}

func (e *ProfileEditor) Value() models.ProfileRequest { return e.form.Value() }
func (e *ProfileEditor) Errors() map[string]string    { return e.form.Errors() }

func (e *ProfileEditor) Track(initial *models.ProfileRequest) bool { return e.form.Track(initial) }

func (e *ProfileEditor) SetField(name string, value any) (models.ProfileRequest, error) {
	return e.form.SetField(name, value)
}

// Save はプロフィールを保存し、更新後のユーザーを返します。
func (e *ProfileEditor) Save(ctx context.Context) (*models.User, error) {
	res, err := e.saver.Save(ctx, e.form.Value())
	if err != nil || res == nil {
		return nil, err
	}
	return &res.User, nil
}

func (e *ProfileEditor) Saving() bool          { return e.saver.Saving() }
func (e *ProfileEditor) SaveErr() *saver.Error { return e.saver.Err() }
