package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Task types. The body column holds plain text for TypeText and a JSON-encoded
// string array for TypeList.
const (
	TypeText = "text"
	TypeList = "list"
)

// ValidType reports whether t is one of the recognized task types.
func ValidType(t string) bool {
	return t == TypeText || t == TypeList
}

// Task is a single item owned by a user and filed under one of their categories.
// Private tasks (Shared=false) are visible to the owner only; shared tasks can
// be read by any authenticated user who knows the id, but never show up in
// another user's listings.
type Task struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"index"`
	CategoryID uint `gorm:"index"`
	Title      string
	Type       string
	Body       string
	Shared     bool `gorm:"default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	User     *User     `gorm:"foreignKey:UserID"`
}

// Body in its decoded form. Exactly one side carries data, selected by the
// task type.
type Body struct {
	Text string
	List []string
}

// DecodeBody interprets the stored body according to the task type.
func (t *Task) DecodeBody() (Body, error) {
	switch t.Type {
	case TypeText:
		return Body{Text: t.Body}, nil
	case TypeList:
		var items []string
		if err := json.Unmarshal([]byte(t.Body), &items); err != nil {
			return Body{}, fmt.Errorf("decode list body of task %d: %w", t.ID, err)
		}
		return Body{List: items}, nil
	default:
		return Body{}, fmt.Errorf("task %d has unknown type %q", t.ID, t.Type)
	}
}

// EncodeBody serializes a decoded body for storage under the given type.
func EncodeBody(taskType string, b Body) (string, error) {
	switch taskType {
	case TypeText:
		return b.Text, nil
	case TypeList:
		raw, err := json.Marshal(b.List)
		if err != nil {
			return "", fmt.Errorf("encode list body: %w", err)
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("unknown task type %q", taskType)
	}
}
