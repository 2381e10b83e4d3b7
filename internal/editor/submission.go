package editor

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"submitserver/internal/form"
	"submitserver/internal/saver"
	"submitserver/internal/validation"
	"submitserver/models"
)

// ErrStaleCategory は CategoryEditor を取得した後にカテゴリの並びが変わった場合のエラーです。
var ErrStaleCategory = errors.New("editor: the category list has changed; open the category again")

// SubmissionEditor はイベントに対する1件の提出の編集です。
type SubmissionEditor struct {
	remote *saver.Remote
	event  models.Event
	limit  int
	layout int // カテゴリの並びが変わるたびに増える
	form   *form.State[models.SubmissionRequest]
	saver  *saver.Coordinator[models.SubmissionRequest, models.GameSubmission]
}

func NewSubmissionEditor(remote *saver.Remote, event models.Event, initial *models.SubmissionRequest) *SubmissionEditor {
	e := &SubmissionEditor{remote: remote, event: event, limit: categoryLimit(event, initial)}
	e.form = form.New(initial, e.check)
	e.saver = saver.New[models.SubmissionRequest, models.GameSubmission](remote, http.MethodPost,
		fmt.Sprintf("/submissions/%d", event.ID), saver.Options[models.SubmissionRequest]{
			CanSave: e.form.Valid,
		})
	return e
}

// categoryLimit は既存の提出が上限より多くのカテゴリを持っている場合、その数まで許可します。
func categoryLimit(event models.Event, initial *models.SubmissionRequest) int {
	limit := event.MaxCategoriesPerSubmission
	if initial != nil && len(initial.Categories) > limit {
		limit = len(initial.Categories)
	}
	return limit
}

// check は validate タグの検証に、イベント固有のジャンルとカテゴリ数の制約を加えます。
func (e *SubmissionEditor) check(v models.SubmissionRequest) map[string]string {
	errs := validation.Map(v)
	add := func(path, msg string) {
		if errs == nil {
			errs = map[string]string{}
		}
		if _, ok := errs[path]; !ok {
			errs[path] = msg
		}
	}
	if v.PrimaryGenre != "" && !e.event.HasGenre(v.PrimaryGenre) {
		add("primaryGenre", "Genre must be one of this event's genres.")
	}
	if v.SecondaryGenre != nil && *v.SecondaryGenre != "" && !e.event.HasGenre(*v.SecondaryGenre) {
		add("secondaryGenre", "Secondary genre must be one of this event's genres.")
	}
	if len(v.Categories) > e.limit {
		add("categories", fmt.Sprintf("You cannot submit more than %d categories to this event.", e.limit))
	}
	return errs
}

func (e *SubmissionEditor) Value() models.SubmissionRequest { return e.form.Value() }
func (e *SubmissionEditor) Errors() map[string]string       { return e.form.Errors() }

// Track は初期値が別のものに変わった場合に編集を破棄し、カテゴリ数の上限も新しい初期値から求め直します。
func (e *SubmissionEditor) Track(initial *models.SubmissionRequest) bool {
	prev := e.limit
	e.limit = categoryLimit(e.event, initial)
	if !e.form.Track(initial) {
		e.limit = prev
		return false
	}
	e.layout++
	return true
}

func (e *SubmissionEditor) SetField(name string, value any) (models.SubmissionRequest, error) {
	v, err := e.form.SetField(name, value)
	if err == nil && (name == "categories" || name == "Categories") {
		e.layout++
	}
	return v, err
}

// RemainingCategories は追加できるカテゴリの数です。
func (e *SubmissionEditor) RemainingCategories() int {
	n := e.limit - len(e.form.Value().Categories)
	if n < 0 {
		return 0
	}
	return n
}

// AddCategory は空のカテゴリを末尾に追加します。上限に達している場合はエラーです。
func (e *SubmissionEditor) AddCategory() (models.SubmissionRequest, error) {
	if e.RemainingCategories() == 0 {
		return e.form.Value(), fmt.Errorf("editor: this event allows at most %d categories", e.limit)
	}
	categories := append(append([]models.CategoryRequest(nil), e.form.Value().Categories...), models.CategoryRequest{})
	return e.SetField("categories", categories)
}

// DeleteCategory は i 番目のカテゴリを削除します。
func (e *SubmissionEditor) DeleteCategory(i int) (models.SubmissionRequest, error) {
	current := e.form.Value().Categories
	if i < 0 || i >= len(current) {
		return e.form.Value(), fmt.Errorf("editor: category index %d out of range", i)
	}
	categories := append(append([]models.CategoryRequest(nil), current[:i]...), current[i+1:]...)
	return e.SetField("categories", categories)
}

// SetCategory は i 番目のカテゴリを置き換えます。開いている CategoryEditor は使えなくなります。
func (e *SubmissionEditor) SetCategory(i int, c models.CategoryRequest) (models.SubmissionRequest, error) {
	v, err := e.setCategory(i, c)
	if err == nil {
		e.layout++
	}
	return v, err
}

func (e *SubmissionEditor) setCategory(i int, c models.CategoryRequest) (models.SubmissionRequest, error) {
	current := e.form.Value().Categories
	if i < 0 || i >= len(current) {
		return e.form.Value(), fmt.Errorf("editor: category index %d out of range", i)
	}
	categories := append([]models.CategoryRequest(nil), current...)
	categories[i] = c
	return e.form.SetField("categories", categories)
}

// Category は i 番目のカテゴリの編集を返します。
func (e *SubmissionEditor) Category(i int) (*CategoryEditor, error) {
	current := e.form.Value().Categories
	if i < 0 || i >= len(current) {
		return nil, fmt.Errorf("editor: category index %d out of range", i)
	}
	c := current[i]
	return &CategoryEditor{parent: e, index: i, layout: e.layout, form: form.New(&c, nil)}, nil
}

// Save は提出を保存します。新規作成だった場合は ID を反映します。
func (e *SubmissionEditor) Save(ctx context.Context) (*models.GameSubmission, error) {
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

func (e *SubmissionEditor) Saving() bool          { return e.saver.Saving() }
func (e *SubmissionEditor) SaveErr() *saver.Error { return e.saver.Err() }

// Delete は保存済みの提出を削除します。
func (e *SubmissionEditor) Delete(ctx context.Context) error {
	v := e.form.Value()
	if v.ID == nil {
		return fmt.Errorf("editor: submission has not been saved")
	}
	return e.remote.Do(ctx, http.MethodDelete, fmt.Sprintf("/submissions/%d", *v.ID), nil, nil)
}

// CategoryEditor は提出の中の1カテゴリの編集です。変更は親の提出に反映されます。
// 取得後に親のカテゴリが追加・削除・置換された場合は ErrStaleCategory を返します。
type CategoryEditor struct {
	parent *SubmissionEditor
	index  int
	layout int
	form   *form.State[models.CategoryRequest]
}

func (c *CategoryEditor) Value() models.CategoryRequest { return c.form.Value() }
func (c *CategoryEditor) Errors() map[string]string     { return c.form.Errors() }

// SetField はカテゴリの1項目を更新し、親の提出に書き戻します。
func (c *CategoryEditor) SetField(name string, value any) (models.CategoryRequest, error) {
	if c.layout != c.parent.layout {
		return c.form.Value(), ErrStaleCategory
	}
	v, err := c.form.SetField(name, value)
	if err != nil {
		return v, err
	}
	if _, err := c.parent.setCategory(c.index, v); err != nil {
		return v, err
	}
	return v, nil
}
