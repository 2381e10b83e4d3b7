package saver

import (
	"context"
	"sync"
)

// Options は保存処理の前提条件と送信前の変換です。
type Options[T any] struct {
	CanSave func() bool // false の間は保存しない
	Format  func(T) any // 送信前にサーバー管理の項目を取り除くなど
}

// Coordinator は T を送信して U を受け取る保存処理です。
// 保存中に呼ばれた Save はキューに積まずに無視します。
type Coordinator[T, U any] struct {
	remote *Remote
	method string
	path   string
	opts   Options[T]

	mu     sync.Mutex
	saving bool
	err    *Error
}

func New[T, U any](remote *Remote, method, path string, opts Options[T]) *Coordinator[T, U] {
	return &Coordinator[T, U]{remote: remote, method: method, path: path, opts: opts}
}

// Save は value を送信します。保存中または CanSave が false の場合は何もせず (nil, nil) を返します。
// 失敗した場合は *Error を保持して返します。
func (c *Coordinator[T, U]) Save(ctx context.Context, value T) (*U, error) {
	c.mu.Lock()
	if c.saving || (c.opts.CanSave != nil && !c.opts.CanSave()) {
		c.mu.Unlock()
		return nil, nil
	}
	c.saving = true
	c.err = nil
	c.mu.Unlock()

	var body any = value
	if c.opts.Format != nil {
		body = c.opts.Format(value)
	}

	var out U
	err := c.remote.Do(ctx, c.method, c.path, body, &out)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.saving = false
	if err != nil {
		c.err = AsError(err)
		return nil, c.err
	}
	return &out, nil
}

// Saving は保存中かどうかを返します。
func (c *Coordinator[T, U]) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// Err は直前の保存の失敗を返します。成功していれば nil です。
func (c *Coordinator[T, U]) Err() *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ClearErr は表示済みのエラーを消します。
func (c *Coordinator[T, U]) ClearErr() {
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()
}
